package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Candidate is one applicant profile as stored in the talent pool.
// Experience and Score stay pointers so a record that never carried the
// field can be told apart from an explicit zero.
type Candidate struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	JobTitle   string   `json:"job_title,omitempty"`
	Location   string   `json:"location,omitempty"`
	Education  string   `json:"education,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience *float64 `json:"experience,omitempty"`
	Score      *float64 `json:"score,omitempty"`
	ResumeURL  string   `json:"resume_url,omitempty"`
}

type Candidates struct {
	Items []*Candidate `json:"items"`
}

// SearchFields returns the free-text fields the fuzzy stages rank against:
// job title, location and every skill token. Education is excluded since its
// stage does plain keyword containment.
func (c *Candidate) SearchFields() []string {
	fields := make([]string, 0, len(c.Skills)+2)
	if c.JobTitle != "" {
		fields = append(fields, c.JobTitle)
	}
	if c.Location != "" {
		fields = append(fields, c.Location)
	}
	for _, skill := range c.Skills {
		if skill != "" {
			fields = append(fields, skill)
		}
	}
	return fields
}

// Normalize applies the ingest-boundary defaults: contact email lowered,
// free-text fields trimmed, missing numerics set to zero.
func (c *Candidate) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.JobTitle = strings.TrimSpace(c.JobTitle)
	c.Location = strings.TrimSpace(c.Location)
	c.Education = strings.TrimSpace(c.Education)

	skills := make([]string, 0, len(c.Skills))
	for _, skill := range c.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	c.Skills = skills

	zero := 0.0
	if c.Experience == nil {
		c.Experience = &zero
	}
	if c.Score == nil {
		c.Score = &zero
	}
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, item := range c.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Report by location.
func (c *Candidates) ReportByLocation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range c.Items {
		key := item.Location
		if key == "" {
			key = "unknown"
		}
		entry := map[string]string{
			"name":      item.Name,
			"job_title": item.JobTitle,
			"education": item.Education,
			"skills":    strings.Join(item.Skills, ", "),
		}
		if item.Experience != nil {
			entry["experience"] = fmt.Sprintf("%g", *item.Experience)
		}
		if item.Score != nil {
			entry["score"] = fmt.Sprintf("%g", *item.Score)
		}
		report[key] = append(report[key], entry)
	}
	return report
}
