// Package testkit provides test support for the HTTP API: in-memory and
// mock repositories, and a JSON-scenario runner.
//
// A scenario file holds an array of request/expectation pairs:
//
//	[
//	  {
//	    "name": "order without quantity",
//	    "requestMethod": "POST",
//	    "requestUrl": "/order",
//	    "requestBody": {"name": "Alice", "menu": "Burger", "type": "food"},
//	    "expectedCode": 400,
//	    "responseBody": {"error": "*"}
//	  }
//	]
//
// Bodies may also live next to the scenario file (requestFileName,
// responseFileName). A "*" string in an expected body matches any value.
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunFile(t, newHandler, "testdata/orders.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single REST API test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ResponseBody     json.RawMessage `json:"responseBody"`
	ResponseFileName string          `json:"responseFileName"`

	dir string
}

// LoadScenarios reads and validates the scenario array in path.
func LoadScenarios(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range scenarios {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %d in %q: %w", i, abs, err)
		}
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// Request returns the request body, inline or from RequestFileName.
func (s *Scenario) Request() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	return s.readFile(s.RequestFileName)
}

// Response returns the expected response body, or nil when unchecked.
func (s *Scenario) Response() ([]byte, error) {
	if len(s.ResponseBody) > 0 {
		return s.ResponseBody, nil
	}
	return s.readFile(s.ResponseFileName)
}

func (s *Scenario) readFile(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.dir, name)
	}
	return os.ReadFile(name)
}
