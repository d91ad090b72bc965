package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadResume reads resume data from a JSON or YAML file.
func LoadResume(path string) (resume Resume, err error) {
	err = decodeFile(path, &resume)
	if err != nil {
		return resume, err
	}

	err = resume.Validate()
	if err != nil {
		err = errors.Wrap(err, "resume validation failed")
		return resume, err
	}

	return resume, err
}

// LoadPortfolio reads portfolio data from a JSON or YAML file.
func LoadPortfolio(path string) (portfolio Portfolio, err error) {
	err = decodeFile(path, &portfolio)
	if err != nil {
		return portfolio, err
	}

	err = portfolio.Validate()
	if err != nil {
		err = errors.Wrap(err, "portfolio validation failed")
		return portfolio, err
	}

	return portfolio, err
}

// LoadData reads an arbitrary data record from a JSON or YAML file.
// The top level must be an object.
func LoadData(path string) (data map[string]any, err error) {
	err = decodeFile(path, &data)
	if err != nil {
		return data, err
	}

	if data == nil {
		err = errors.Errorf("data file %s does not contain an object", path)
		return data, err
	}

	return data, err
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) (ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	ok = ext == ".yaml" || ext == ".yml"
	return ok
}

// Marshal encodes v as YAML when path has a YAML extension, and as indented JSON otherwise.
func Marshal(path string, v any) (data []byte, err error) {
	if IsYAML(path) {
		data, err = yaml.Marshal(v)
		if err != nil {
			err = errors.Wrap(err, "failed to encode YAML")
		}
		return data, err
	}

	data, err = json.MarshalIndent(v, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to encode JSON")
		return data, err
	}
	data = append(data, '\n')

	return data, err
}

func decodeFile(path string, v any) (err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read data file: %s", path)
		return err
	}

	if IsYAML(path) {
		err = yaml.Unmarshal(fileData, v)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse YAML: %s", path)
		}
		return err
	}

	err = json.Unmarshal(fileData, v)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse JSON: %s", path)
		return err
	}

	return err
}

// Validate checks that the resume is well-formed.
func (r *Resume) Validate() (err error) {
	if strings.TrimSpace(r.PersonalInfo.Name) == "" {
		err = errors.New("personal_info.name is required")
		return err
	}

	for i, exp := range r.Experience {
		if exp.Title == "" {
			err = errors.Errorf("experience at index %d missing title", i)
			return err
		}
		if exp.Company == "" {
			err = errors.Errorf("experience %q missing company", exp.Title)
			return err
		}
	}

	for i, edu := range r.Education {
		if edu.Degree == "" {
			err = errors.Errorf("education at index %d missing degree", i)
			return err
		}
	}

	for i, project := range r.Projects {
		if project.Name == "" {
			err = errors.Errorf("project at index %d missing name", i)
			return err
		}
	}

	return err
}

// Validate checks that the portfolio is well-formed.
func (p *Portfolio) Validate() (err error) {
	if strings.TrimSpace(p.PersonalInfo.Name) == "" {
		err = errors.New("personal_info.name is required")
		return err
	}

	for i, skill := range p.AboutMe.Skills {
		if skill.Name == "" {
			err = errors.Errorf("skill at index %d missing name", i)
			return err
		}
	}

	for i, exp := range p.Experience {
		if exp.Position == "" {
			err = errors.Errorf("experience at index %d missing position", i)
			return err
		}
		if exp.Company == "" {
			err = errors.Errorf("experience %q missing company", exp.Position)
			return err
		}
	}

	for i, edu := range p.Education {
		if edu.Degree == "" {
			err = errors.Errorf("education at index %d missing degree", i)
			return err
		}
	}

	for i, project := range p.Projects {
		if project.Name == "" {
			err = errors.Errorf("project at index %d missing name", i)
			return err
		}
	}

	return err
}

// Period returns the display period of a position. Years wins over the
// start and end dates when both are present.
func (e ResumeExperience) Period() (period string) {
	period = datePeriod(e.Years, e.StartDate, e.EndDate)
	return period
}

// Period returns the display period of an education entry.
func (e ResumeEducation) Period() (period string) {
	period = datePeriod(e.Years, e.StartDate, e.EndDate)
	return period
}

func datePeriod(years, start, end string) (period string) {
	if years != "" {
		return years
	}

	switch {
	case start != "" && end != "":
		period = start + " - " + end
	case start != "":
		period = start + " - Present"
	default:
		period = end
	}

	return period
}

// Bullets returns the detail bullets of a position, falling back to the
// non-blank lines of the description.
func (e ResumeExperience) Bullets() (bullets []string) {
	if len(e.Details) > 0 {
		return e.Details
	}

	for _, line := range strings.Split(e.Description, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}

	return bullets
}
