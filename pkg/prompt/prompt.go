// Package prompt builds the instruction document that is pasted into a text
// generation tool to extract structured methods, datasets and metrics from a
// manuscript.
package prompt

import (
	"encoding/json"
)

type MethodShape struct {
	ModelName     string `json:"model_name"`
	Type          string `json:"type"`
	EmbeddingSize string `json:"embedding_size"`
	Backbone      string `json:"backbone"`
	Parameters    string `json:"parameters"`
}

type DatasetShape struct {
	Name       string `json:"name"`
	Usage      string `json:"usage"`
	Focus      string `json:"focus"`
	SampleType string `json:"sample_type"`
	IsPublic   string `json:"is_public"`
	NumSamples string `json:"num_samples"`
}

type MetricShape struct {
	Name           string `json:"name"`
	EvaluationType string `json:"evaluation_type"`
	Value          string `json:"value"`
	Description    string `json:"description"`
	ModelName      string `json:"model_name"`
}

type Fields struct {
	Methods  []MethodShape  `json:"methods"`
	Datasets []DatasetShape `json:"datasets"`
	Metrics  []MetricShape  `json:"metrics"`
}

type Document struct {
	Instruction string `json:"instruction"`
	Fields      Fields `json:"fields"`
}

const instruction = "Given the text of an academic manuscript, extract structured information."

// Build returns the fixed prompt document.
func Build() Document {
	return Document{
		Instruction: instruction,
		Fields: Fields{
			Methods: []MethodShape{{
				Type:          "LLM | VLM | Image",
				EmbeddingSize: "integer",
				Parameters:    "integer",
			}},
			Datasets: []DatasetShape{{
				Usage:      "training | finetuning | evaluation",
				Focus:      "main purpose or domain",
				SampleType: "QA pair | long text | medical EHR | report | other",
				IsPublic:   "true | false",
				NumSamples: "integer",
			}},
			Metrics: []MetricShape{{
				EvaluationType: "multiple choice | QA | other",
				Value:          "number",
				Description:    "how the metric is calculated",
				ModelName:      "associated model",
			}},
		},
	}
}

// Generate renders Build as indented JSON.
func Generate() string {
	data, err := json.MarshalIndent(Build(), "", "  ")
	if err != nil {
		// the document is static, marshalling cannot fail
		panic(err)
	}

	return string(data)
}
