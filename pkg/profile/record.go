package profile

import (
	"github.com/nikogura/folio/pkg/template"
)

// Record converts the resume into a template data record. Every field is
// present, so unset fields render as empty text instead of passing through
// as placeholders.
func (r Resume) Record() (rec template.Record) {
	experience := make([]template.Value, len(r.Experience))
	for i, exp := range r.Experience {
		experience[i] = template.Map(template.Record{
			"title":       template.String(exp.Title),
			"company":     template.String(exp.Company),
			"location":    template.String(exp.Location),
			"years":       template.String(exp.Period()),
			"start_date":  template.String(exp.StartDate),
			"end_date":    template.String(exp.EndDate),
			"description": template.String(exp.Description),
			"details":     template.Strings(exp.Bullets()),
		})
	}

	education := make([]template.Value, len(r.Education))
	for i, edu := range r.Education {
		education[i] = template.Map(template.Record{
			"degree":      template.String(edu.Degree),
			"institution": template.String(edu.Institution),
			"location":    template.String(edu.Location),
			"years":       template.String(edu.Period()),
			"start_date":  template.String(edu.StartDate),
			"end_date":    template.String(edu.EndDate),
			"gpa":         template.String(edu.GPA),
			"details":     template.Strings(edu.Details),
		})
	}

	projects := make([]template.Value, len(r.Projects))
	for i, project := range r.Projects {
		projects[i] = template.Map(template.Record{
			"name":         template.String(project.Name),
			"role":         template.String(project.Role),
			"description":  template.String(project.Description),
			"technologies": template.Strings(project.Technologies),
			"link":         template.String(project.Link),
			"period":       template.String(project.Period),
		})
	}

	info := r.PersonalInfo
	rec = template.Record{
		"personal_info": template.Map(template.Record{
			"name":     template.String(info.Name),
			"role":     template.String(info.Role),
			"email":    template.String(info.Email),
			"phone":    template.String(info.Phone),
			"location": template.String(info.Location),
			"linkedin": template.String(info.LinkedIn),
			"github":   template.String(info.GitHub),
			"website":  template.String(info.Website),
		}),
		"summary":           template.String(r.Summary),
		"area_of_expertise": template.Strings(r.AreaOfExpertise),
		"key_achievements":  template.Strings(r.KeyAchievements),
		"experience":        template.List(experience...),
		"education":         template.List(education...),
		"projects":          template.List(projects...),
		"additional":        template.Strings(r.Additional),
	}

	return rec
}

// Record converts the portfolio into a template data record.
func (p Portfolio) Record() (rec template.Record) {
	skills := make([]template.Value, len(p.AboutMe.Skills))
	for i, skill := range p.AboutMe.Skills {
		skills[i] = template.Map(template.Record{
			"name":  template.String(skill.Name),
			"level": template.String(skill.Level),
		})
	}

	experience := make([]template.Value, len(p.Experience))
	for i, exp := range p.Experience {
		experience[i] = template.Map(template.Record{
			"position":         template.String(exp.Position),
			"company":          template.String(exp.Company),
			"period":           template.String(exp.Period),
			"description":      template.String(exp.Description),
			"responsibilities": template.Strings(exp.Responsibilities),
		})
	}

	education := make([]template.Value, len(p.Education))
	for i, edu := range p.Education {
		education[i] = template.Map(template.Record{
			"degree":      template.String(edu.Degree),
			"institution": template.String(edu.Institution),
			"period":      template.String(edu.Period),
			"description": template.String(edu.Description),
			"gpa":         template.String(edu.GPA),
		})
	}

	projects := make([]template.Value, len(p.Projects))
	for i, project := range p.Projects {
		projects[i] = template.Map(template.Record{
			"name":         template.String(project.Name),
			"description":  template.String(project.Description),
			"technologies": template.Strings(project.Technologies),
			"github_url":   template.String(project.GitHubURL),
			"live_url":     template.String(project.LiveURL),
		})
	}

	rec = template.Record{
		"personal_info": template.Map(template.Record{
			"name":         template.String(p.PersonalInfo.Name),
			"role":         template.String(p.PersonalInfo.Role),
			"introduction": template.String(p.PersonalInfo.Introduction),
			"location":     template.String(p.PersonalInfo.Location),
		}),
		"about_me": template.Map(template.Record{
			"biography": template.String(p.AboutMe.Biography),
			"skills":    template.List(skills...),
		}),
		"experience": template.List(experience...),
		"education":  template.List(education...),
		"projects":   template.List(projects...),
		"contact": template.Map(template.Record{
			"email":    template.String(p.Contact.Email),
			"phone":    template.String(p.Contact.Phone),
			"linkedin": template.String(p.Contact.LinkedIn),
			"github":   template.String(p.Contact.GitHub),
			"twitter":  template.String(p.Contact.Twitter),
		}),
	}

	return rec
}
