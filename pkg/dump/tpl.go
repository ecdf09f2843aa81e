package dump

const markdownTemplate = `# Manuscripts

{{ len . }} record(s).
{{ range $i, $r := . }}
## {{ $i }}. {{ or $r.Title "<no title>" }}
{{ if $r.Authors }}
**Authors:** {{ join $r.Authors ", " }}
{{ end -}}
{{ if $r.Affiliations }}
**Affiliations:** {{ join $r.Affiliations "; " }}
{{ end -}}
{{ if $r.Abstract }}
> {{ $r.Abstract }}
{{ end -}}
{{ if $r.Methods }}
| Model | Type | Backbone | Parameters |
|---|---|---|---|
{{ range $r.Methods -}}
| {{ .Text "model_name" }} | {{ .Text "type" }} | {{ .Text "backbone" }} | {{ .Text "parameters" }} |
{{ end -}}
{{ end -}}
{{ if $r.Datasets }}
| Dataset | Usage | Focus | Samples |
|---|---|---|---|
{{ range $r.Datasets -}}
| {{ .Text "name" }} | {{ .Text "usage" }} | {{ .Text "focus" }} | {{ .Text "num_samples" }} |
{{ end -}}
{{ end -}}
{{ if $r.Metrics }}
| Metric | Model | Value | Evaluation |
|---|---|---|---|
{{ range $r.Metrics -}}
| {{ .Text "name" }} | {{ .Text "model_name" }} | {{ .Text "value" }} | {{ .Text "evaluation_type" }} |
{{ end -}}
{{ end -}}
{{ end -}}
`
