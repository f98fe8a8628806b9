package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/2beens/workouts/internal/auth"
)

type testUser struct {
	ID    string
	Token string
}

// newUser opens a session for a fresh user through the issuer endpoint.
func (s *IntegrationTestSuite) newUser(ctx context.Context) testUser {
	userID := "user-" + gofakeit.UUID()
	body, err := json.Marshal(auth.NewSessionRequest{UserID: userID})
	s.Require().NoError(err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+"/auth/session", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.IssuerSecretHeader, testIssuerSecret)

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var sessionResp auth.NewSessionResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&sessionResp))
	s.Require().NotEmpty(sessionResp.Token)

	return testUser{ID: userID, Token: sessionResp.Token}
}

// do sends an authenticated JSON request and decodes the response into out
// when out is not nil. It returns the status code.
func (s *IntegrationTestSuite) do(ctx context.Context, user testUser, method, path string, in, out any) int {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		s.Require().NoError(err)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(auth.TokenHeader, user.Token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if out != nil && len(respBytes) > 0 {
		s.Require().NoError(json.Unmarshal(respBytes, out), string(respBytes))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) makePremium(user testUser, expiresIn time.Duration) {
	now := time.Now().UTC()
	_, err := s.DB.Exec(`
		INSERT INTO subscription (id, user_id, product_id, purchase_token, status, expiry_date, acknowledged, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', $5, TRUE, $6, $6)`,
		uuid.NewString(), user.ID, "premium_monthly", gofakeit.UUID(), now.Add(expiresIn), now,
	)
	s.Require().NoError(err)
}

func planPath(id string, parts ...string) string {
	p := "/workout-plans/" + id
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func setPath(executionID string, setNumber int, action string) string {
	return fmt.Sprintf("/exercise-executions/%s/sets/%d/%s", executionID, setNumber, action)
}
