package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dkoladic/portfolio-backend/internal/education"
	"github.com/dkoladic/portfolio-backend/internal/hobbies"
	"github.com/dkoladic/portfolio-backend/internal/messages"
	"github.com/dkoladic/portfolio-backend/internal/projects"
	"github.com/dkoladic/portfolio-backend/internal/skills"
	"github.com/dkoladic/portfolio-backend/internal/testimonials"
)

func (s *IntegrationTestSuite) TestProjects() {
	sessionCookie := s.doLogin()

	project := projects.Project{
		Title:        "portfolio-backend",
		Description:  "the backend serving this very site",
		Technologies: []string{"go", "postgres", "redis"},
		GithubURL:    "https://github.com/dkoladic/portfolio-backend",
		Priority:     1,
	}
	projectBytes, err := json.Marshal(project)
	s.Require().NoError(err)

	req := s.newRequest("POST", "/api/admin/projects", bytes.NewBuffer(projectBytes))
	req.AddCookie(sessionCookie)
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode, "add project failed: %s", respBytes)
	s.True(strings.HasPrefix(string(respBytes), "added:"))

	// anyone can read the project list
	req = s.newRequest("GET", "/api/projects", nil)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listResp projects.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &listResp))
	s.Require().Equal(len(listResp.Projects), listResp.Total)

	var added *projects.Project
	for i := range listResp.Projects {
		if listResp.Projects[i].Title == project.Title {
			added = &listResp.Projects[i]
			break
		}
	}
	s.Require().NotNil(added, "added project not in the public list")
	s.Equal(project.Description, added.Description)
	s.Equal(project.Technologies, added.Technologies)
	s.Equal("in-progress", added.Status)

	// writes require a session
	req = s.newRequest("DELETE", fmt.Sprintf("/api/admin/projects/%d", added.ID), nil)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	req = s.newRequest("DELETE", fmt.Sprintf("/api/admin/projects/%d", added.ID), nil)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(fmt.Sprintf("deleted:%d", added.ID), string(respBytes))
}

func (s *IntegrationTestSuite) TestTestimonialsModeration() {
	sessionCookie := s.doLogin()

	submitBytes, err := json.Marshal(testimonials.Testimonial{
		Name:    "Happy Client",
		Company: "ACME",
		Content: "great work, would hire again",
		Rating:  5,
	})
	s.Require().NoError(err)

	req := s.newRequest("POST", "/api/testimonials", bytes.NewBuffer(submitBytes))
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "submit failed: %s", respBytes)

	var submitResp struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(respBytes, &submitResp))
	s.Equal(testimonials.StatusPending, submitResp.Status)

	// not visible publicly before approval
	s.NotContains(s.publicTestimonialIDs(), submitResp.ID)

	statusBytes := []byte(`{"status":"approved"}`)
	req = s.newRequest(
		"PUT",
		fmt.Sprintf("/api/admin/testimonials/%d/status", submitResp.ID),
		bytes.NewBuffer(statusBytes),
	)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.Contains(s.publicTestimonialIDs(), submitResp.ID)
}

func (s *IntegrationTestSuite) publicTestimonialIDs() []int {
	req := s.newRequest("GET", "/api/testimonials", nil)
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listResp testimonials.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &listResp))

	ids := make([]int, 0, len(listResp.Testimonials))
	for _, t := range listResp.Testimonials {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s *IntegrationTestSuite) TestEducation() {
	sessionCookie := s.doLogin()

	entryBytes, err := json.Marshal(education.Entry{
		School:    "University of Belgrade",
		Degree:    "BSc Software Engineering",
		StartDate: "2013-10-01",
	})
	s.Require().NoError(err)

	req := s.newRequest("POST", "/api/admin/education", bytes.NewBuffer(entryBytes))
	req.AddCookie(sessionCookie)
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode, "add education failed: %s", respBytes)
	s.True(strings.HasPrefix(string(respBytes), "added:"))

	// education list is public
	req = s.newRequest("GET", "/api/education", nil)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listResp education.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &listResp))

	var added *education.Entry
	for i := range listResp.Education {
		if listResp.Education[i].School == "University of Belgrade" {
			added = &listResp.Education[i]
			break
		}
	}
	s.Require().NotNil(added, "added education entry not in the public list")
	s.Equal("2013-10-01", added.StartDate)
	s.Nil(added.EndDate)
}

func (s *IntegrationTestSuite) TestSkillsAndHobbies() {
	sessionCookie := s.doLogin()

	// both surfaces are admin only
	for _, path := range []string{"/api/admin/skills", "/api/admin/hobbies"} {
		req := s.newRequest("GET", path, nil)
		resp, err := s.httpClient.Do(req)
		s.Require().NoError(err)
		s.Require().NoError(resp.Body.Close())
		s.Equal(http.StatusUnauthorized, resp.StatusCode)
	}

	skillBytes, err := json.Marshal(skills.Skill{
		Name:     "Go",
		Category: "backend",
		Level:    "expert",
	})
	s.Require().NoError(err)

	req := s.newRequest("POST", "/api/admin/skills", bytes.NewBuffer(skillBytes))
	req.AddCookie(sessionCookie)
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode, "add skill failed: %s", respBytes)

	req = s.newRequest("GET", "/api/admin/skills", nil)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var skillsList skills.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &skillsList))
	s.Require().NotEmpty(skillsList.Skills)
	s.Equal("Go", skillsList.Skills[0].Name)
	s.Equal(1, skillsList.Skills[0].DisplayOrder)

	hobbyBytes, err := json.Marshal(hobbies.Hobby{
		Name:        "hiking",
		Description: "preferably mountains",
	})
	s.Require().NoError(err)

	req = s.newRequest("POST", "/api/admin/hobbies", bytes.NewBuffer(hobbyBytes))
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode, "add hobby failed: %s", respBytes)

	req = s.newRequest("GET", "/api/admin/hobbies", nil)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var hobbiesList hobbies.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &hobbiesList))
	s.Require().NotEmpty(hobbiesList.Hobbies)
	s.Equal("hiking", hobbiesList.Hobbies[0].Name)
}

func (s *IntegrationTestSuite) TestContactMessages() {
	sessionCookie := s.doLogin()

	submitBytes, err := json.Marshal(messages.Message{
		Name:    "A Recruiter",
		Email:   "recruiter@example.com",
		Subject: "job opportunity",
		Body:    "we would like to talk to you",
	})
	s.Require().NoError(err)

	req := s.newRequest("POST", "/api/messages", bytes.NewBuffer(submitBytes))
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "submit failed: %s", respBytes)

	var submitResp struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(respBytes, &submitResp))
	s.Require().NotEmpty(submitResp.ID)

	req = s.newRequest("GET", "/api/admin/messages", nil)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var listResp messages.ListResponse
	s.Require().NoError(json.Unmarshal(respBytes, &listResp))

	var received *messages.Message
	for i := range listResp.Messages {
		if listResp.Messages[i].ID == submitResp.ID {
			received = &listResp.Messages[i]
			break
		}
	}
	s.Require().NotNil(received, "submitted message not in the admin list")
	s.Equal(messages.StatusUnread, received.Status)
	s.Equal("job opportunity", received.Subject)

	req = s.newRequest("PUT", fmt.Sprintf("/api/admin/messages/%s/read", submitResp.ID), nil)
	req.AddCookie(sessionCookie)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(fmt.Sprintf("updated:%s", submitResp.ID), string(respBytes))
}

func (s *IntegrationTestSuite) TestSettings() {
	sessionCookie := s.doLogin()

	values := map[string]string{
		"fullName": "Dusan Koladic",
		"headline": "software engineer",
		"email":    "hello@dusan-koladic.com",
	}
	valuesBytes, err := json.Marshal(values)
	s.Require().NoError(err)

	req := s.newRequest("PUT", "/api/admin/settings", bytes.NewBuffer(valuesBytes))
	req.AddCookie(sessionCookie)
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode, "upsert settings failed: %s", respBytes)

	req = s.newRequest("GET", "/api/settings", nil)
	resp, err = s.httpClient.Do(req)
	s.Require().NoError(err)
	respBytes, err = io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var fetched map[string]string
	s.Require().NoError(json.Unmarshal(respBytes, &fetched))
	for key, value := range values {
		s.Equal(value, fetched[key])
	}
}
