package builder

import (
	"strings"

	"github.com/nikogura/folio/pkg/template"
)

// Fragment templates render one timeline entry each. Field values pass
// through the renderer, so they are escaped before the joined fragment is
// handed to the page as a raw value.
const (
	educationItem = `        <div class="timeline-item">
            <div class="timeline-content">
                <h3>{{degree}}</h3>
                <h4>{{institution}}</h4>
                {{#if period}}<p class="timeline-date">{{period}}</p>{{/if}}
                {{#if description}}<p>{{description}}</p>{{/if}}
                {{#if gpa}}<p class="timeline-gpa">GPA: {{gpa}}</p>{{/if}}
            </div>
        </div>`

	experienceItem = `        <div class="timeline-item">
            <div class="timeline-content">
                <h3>{{position}}</h3>
                <h4>{{company}}</h4>
                {{#if period}}<p class="timeline-date">{{period}}</p>{{/if}}
                {{#if description}}<p>{{description}}</p>{{/if}}
                {{#if responsibilities}}<ul class="responsibilities">
                    {{#each responsibilities}}<li>{{this}}</li>{{/each}}
                </ul>{{/if}}
            </div>
        </div>`

	projectItem = `        <div class="project-card">
            <h3>{{name}}</h3>
            {{#if description}}<p class="project-description">{{description}}</p>{{/if}}
            {{#if technologies}}<div class="project-tech">
                {{#each technologies}}<span class="tech-tag">{{this}}</span>{{/each}}
            </div>{{/if}}
            <div class="project-links">
                {{#if github_url}}<a href="{{github_url}}" target="_blank" class="project-link">GitHub</a>{{/if}}
                {{#if live_url}}<a href="{{live_url}}" target="_blank" class="project-link">Live Demo</a>{{/if}}
            </div>
        </div>`
)

//nolint:gochecknoglobals // parsed once, immutable
var (
	educationFragment  = template.Parse(educationItem)
	experienceFragment = template.Parse(experienceItem)
	projectFragment    = template.Parse(projectItem)
)

// timeline renders every record in list through fragment and joins the
// results into one raw value.
func timeline(fragment *template.Template, list template.Value) (out template.Value) {
	items := list.Items()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fragment.Execute(item.Record())
	}

	out = template.Raw(strings.Join(parts, "\n"))
	return out
}
