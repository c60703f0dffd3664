package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dkoladic/portfolio-backend/internal/admin"
	"github.com/dkoladic/portfolio-backend/internal/auth"
)

// doLogin logs the test admin in and returns the session cookie
// set by the server.
func (s *IntegrationTestSuite) doLogin() *http.Cookie {
	loginReqBytes, err := json.Marshal(admin.LoginRequest{
		Username: testUsername,
		Password: testPassword,
	})
	s.Require().NoError(err)

	req, err := http.NewRequest(
		"POST",
		fmt.Sprintf("%s/api/admin/auth", serverEndpoint),
		bytes.NewBuffer(loginReqBytes),
	)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "login failed: %s", respBytes)

	var loginResp struct {
		Success bool `json:"success"`
	}
	s.Require().NoError(json.Unmarshal(respBytes, &loginResp))
	s.Require().True(loginResp.Success)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			s.Require().NotEmpty(cookie.Value)
			return cookie
		}
	}

	s.Require().FailNow("session cookie not found in login response")
	return nil
}

// newRequest creates a request against the test server, with the
// user agent the cors middleware lets through.
func (s *IntegrationTestSuite) newRequest(method, path string, body io.Reader) *http.Request {
	req, err := http.NewRequest(method, serverEndpoint+path, body)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
