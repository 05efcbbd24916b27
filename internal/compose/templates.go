// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import "text/template"

// blogPromptTmpl renders a blog-post generation request. The output
// contract names the five field markers the parser looks for, and when
// research is present it demands numeric bracket citations matching the
// rendered ordinals plus a trailing References section.
var blogPromptTmpl = template.Must(template.New("blog").Parse(`You are an expert content writer. Write a complete blog post about "{{.Subject}}" for {{.Audience}}. Today's date is {{.Date}}.
{{if .Keywords}}
Target these SEO keywords, in priority order. The primary keyword is "{{.PrimaryKeyword}}"; work it into the title and the opening paragraph naturally.
{{range .Keywords}}- {{.}}
{{end}}{{end}}{{if .Blocks}}
Ground the post in the following research context. Cite a source with its bracketed number (for example [1]) wherever you draw on it.
{{range .Blocks}}
### {{.Label}}
{{range .Items}}
[{{.Ordinal}}] {{.Title}}{{if .Author}} ({{.Author}}){{end}}
{{if .Body}}{{.Body}}
{{end}}{{if .Date}}Published: {{.Date}}
{{end}}{{if .URL}}Link: {{.URL}}
{{end}}{{end}}{{end}}{{end}}
Respond with exactly these sections, in this order:

TITLE: the post title on one line
META_DESCRIPTION: an SEO meta description of at most 160 characters
SUMMARY: a two-to-three sentence summary
TAGS: five to eight comma-separated tags
BODY:
The full post in Markdown. Use ## subheadings, short paragraphs, and a concluding section.{{if .Blocks}} Cite research sources inline with their bracketed numbers, and end the body with a "## References" section listing each cited source as "[n] Title — URL" using the exact titles and links given above.{{end}}

Do not add any text before TITLE: or after the body.
`))

// topicsPromptTmpl renders a topic-list generation request. The contract is
// strict JSON with no surrounding text.
var topicsPromptTmpl = template.Must(template.New("topics").Parse(`You are a content strategist. Propose {{.TopicCount}} blog topic ideas for the category "{{.Subject}}" aimed at {{.Audience}}. Today's date is {{.Date}}.
{{if .Keywords}}
Favor topics that can rank for these keywords. The primary keyword is "{{.PrimaryKeyword}}".
{{range .Keywords}}- {{.}}
{{end}}{{end}}{{if .Blocks}}
Use the following research context to find angles with current interest:
{{range .Blocks}}
### {{.Label}}
{{range .Items}}
[{{.Ordinal}}] {{.Title}}{{if .Author}} ({{.Author}}){{end}}
{{if .Body}}{{.Body}}
{{end}}{{if .Date}}Published: {{.Date}}
{{end}}{{if .URL}}Link: {{.URL}}
{{end}}{{end}}{{end}}{{end}}
Respond with strictly valid JSON matching this schema and nothing else — no Markdown fences, no commentary:

{
  "category": "{{.Subject}}",
  "audience": "{{.Audience}}",
  "generatedAt": "{{.Date}}",
  "topics": [
    {
      "title": "post title",
      "summary": "one or two sentences",
      "keyPoints": ["three to five key points"],
      "targetKeyword": "primary keyword for this topic",
      "valueProposition": "why the audience would read it"
    }
  ]
}
`))
