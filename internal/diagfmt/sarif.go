package diagfmt

import (
	"io"
	"slices"

	"github.com/google/uuid"

	"basv2/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails sarifAutomation   `json:"automationDetails"`
	Invocations       []sarifInvocation `json:"invocations,omitempty"`
	Artifacts         []sarifArtifact   `json:"artifacts,omitempty"`
	Results           []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifArtifact struct {
	Location sarifArtifactLocation `json:"location"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine uint32 `json:"startLine"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif writes all entries as a single SARIF 2.1.0 run. Regions point at
// the physical row of the listing, not the BASIC line number.
func Sarif(w io.Writer, entries []Entry, meta SarifRunMeta) error {
	guid := meta.RunGUID
	if guid == "" {
		guid = uuid.NewString()
	}
	name := meta.ToolName
	if name == "" {
		name = "basv2"
	}

	run := sarifRun{
		Tool:              sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion}},
		AutomationDetails: sarifAutomation{GUID: guid},
		Results:           []sarifResult{},
	}

	seenRules := make(map[diag.Code]bool)
	var rules []diag.Code
	success := true
	for _, e := range entries {
		uri := e.Path
		run.Artifacts = append(run.Artifacts, sarifArtifact{Location: sarifArtifactLocation{URI: uri}})
		if e.Report == nil {
			continue
		}
		if e.Report.HasErrors() {
			success = false
		}
		for _, d := range e.Report.Diagnostics {
			if !seenRules[d.Code] {
				seenRules[d.Code] = true
				rules = append(rules, d.Code)
			}
			loc := sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: uri}}
			if d.Pos.Row > 0 && (e.File == nil || e.File.HasLine(d.Pos.Row)) {
				loc.Region = &sarifRegion{StartLine: d.Pos.Row}
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:    d.Code.ID(),
				Level:     sarifLevel(d.Severity),
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{PhysicalLocation: loc}},
			})
		}
	}

	slices.Sort(rules)
	run.Tool.Driver.Rules = make([]sarifRule, 0, len(rules))
	for _, c := range rules {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               c.ID(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: success}}
	}

	return encodeIndented(w, sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}
