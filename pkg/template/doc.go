// Package template renders the handlebars-like markup used by the resume and
// portfolio page templates.
//
// Three markup forms are understood:
//
//	{{name}}  {{personal_info.name}}        scalar placeholder, dotted path
//	{{#if path}} ... {{/if}}                included when path is truthy
//	{{#each path}} ... {{/each}}            repeated for each list item
//
// Inside an each body, {{this}} is the current item and {{this.field}} is a
// field of it. Blocks may nest; a close tag pairs with the nearest open tag
// of the same kind.
//
// Example usage:
//
//	data := template.Record{
//	    "personal_info": template.Map(template.Record{
//	        "name": template.String("Ada"),
//	    }),
//	    "skills": template.Strings([]string{"Go", "SQL"}),
//	}
//
//	html := template.Render("<h1>{{personal_info.name}}</h1>{{#each skills}}<li>{{this}}</li>{{/each}}", data)
//	// <h1>Ada</h1><li>Go</li>
//	// <li>SQL</li>
//
// Every scalar is HTML-escaped on insertion. Values created with Raw are
// inserted as they are; they exist for fragments the application assembles
// itself from escaped pieces. FromAny, which converts decoded user data,
// never produces a Raw value.
//
// Rendering never fails. Unresolved placeholders and malformed markup are
// copied to the output unchanged; Template.Diagnostics lists them.
package template
