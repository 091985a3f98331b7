package main_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/amirasaad/pesaflow/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

type MainTestSuite struct {
	testutils.APITestSuite
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) TestRootRoute() {
	resp := s.MakeRequest(http.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "PesaFlow API is running")
}

func (s *MainTestSuite) TestSwaggerDocument() {
	resp := s.MakeRequest(http.MethodGet, "/swagger/doc.json", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "/transactions/stream")
}

func (s *MainTestSuite) TestUnknownRoute() {
	resp := s.MakeRequest(http.MethodGet, "/nope", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
