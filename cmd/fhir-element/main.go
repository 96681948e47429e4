// Package main implements the fhir-element CLI tool. It decodes FHIR JSON
// resources against a mapping-descriptor document, materializes them, and
// prints the resulting element tree.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	em "github.com/gofhir/elementmodel"
	"github.com/gofhir/elementmodel/element"
	"github.com/gofhir/elementmodel/jsontree"
	"github.com/gofhir/elementmodel/materialize"
	"github.com/gofhir/elementmodel/objtree"
	"github.com/gofhir/elementmodel/schema"
)

const usage = `fhir-element - FHIR element tree inspector

Usage:
  fhir-element -types <descriptors.json> [options] <file>...
  fhir-element -types <descriptors.json> [options] -   (read from stdin)

Examples:
  fhir-element -types r4-types.json patient.json
  fhir-element -types r4-types.json -output json patient.json
  fhir-element -types r4-types.json -accept-unknown -lenient-enums draft.json
  cat patient.json | fhir-element -types r4-types.json -

Options:
`

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	TypesPath     string
	AcceptUnknown bool
	LenientEnums  bool
	Output        OutputFormat
	Quiet         bool
	ShowVersion   bool
	Help          bool
	Files         []string
}

// NodeOutput is one element in JSON output, mirroring the node contract.
type NodeOutput struct {
	Name     string       `json:"name"`
	Type     string       `json:"type,omitempty"`
	Value    string       `json:"value,omitempty"`
	Location string       `json:"location"`
	Children []NodeOutput `json:"children,omitempty"`
}

// FileOutput is the JSON output for one processed resource.
type FileOutput struct {
	Resource string      `json:"resource"`
	Ok       bool        `json:"ok"`
	Error    string      `json:"error,omitempty"`
	Location string      `json:"location,omitempty"`
	Tree     *NodeOutput `json:"tree,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("fhir-element v%s\n", em.Version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 || config.TypesPath == "" {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{Output: OutputText}
	var output string

	flag.StringVar(&config.TypesPath, "types", "", "Mapping descriptor document (required)")
	flag.BoolVar(&config.AcceptUnknown, "accept-unknown", false, "Skip unknown members instead of rejecting them")
	flag.BoolVar(&config.LenientEnums, "lenient-enums", false, "Tolerate literals outside closed enumerations")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show errors")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if strings.ToLower(output) == "json" {
		config.Output = OutputJSON
	}
	config.Files = flag.Args()
	return config
}

func run(config *Config) int {
	metrics := em.NewMetrics()
	provider, err := loadProvider(config.TypesPath, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load descriptors: %v\n", err)
		return 1
	}

	opts := []em.Option{
		em.WithAcceptUnknownMembers(config.AcceptUnknown),
		em.WithAllowUnrecognizedEnums(config.LenientEnums),
		em.WithMetrics(metrics),
	}
	m := materialize.New(provider, opts...)

	hasErrors := false
	outputs := make([]FileOutput, 0, len(config.Files))

	for _, file := range config.Files {
		if file == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				hasErrors = true
				continue
			}
			out, fileFailed := processData(m, provider, data, "stdin", config)
			outputs = append(outputs, out)
			hasErrors = hasErrors || fileFailed
			continue
		}

		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern '%s': %v\n", file, globErr)
			hasErrors = true
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}
		for _, match := range matches {
			out, fileFailed := processFile(m, provider, match, config)
			outputs = append(outputs, out)
			hasErrors = hasErrors || fileFailed
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func loadProvider(path string, metrics *em.Metrics) (schema.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	registry := schema.NewRegistry()
	schema.RegisterPrimitives(registry)
	if err := schema.LoadInto(registry, data); err != nil {
		return nil, err
	}
	return schema.NewCachedProviderWithMetrics(registry, 0, metrics), nil
}

func processFile(m *materialize.Materializer, provider schema.Provider, path string, config *Config) (FileOutput, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return FileOutput{Resource: path, Error: err.Error()}, true
	}
	return processData(m, provider, data, path, config)
}

func processData(m *materialize.Materializer, provider schema.Provider, data []byte, name string, config *Config) (FileOutput, bool) {
	decoded, err := jsontree.Decode(data, provider)
	if err != nil {
		return failure(name, err, config), true
	}

	inst, err := m.Materialize(decoded)
	if err != nil {
		return failure(name, err, config), true
	}

	tree := buildOutput(objtree.Wrap(inst))
	if config.Output == OutputText && !config.Quiet {
		fmt.Printf("== %s ==\n", name)
		printTree(objtree.Wrap(inst), 0)
		fmt.Println()
	}
	return FileOutput{Resource: name, Ok: true, Tree: &tree}, false
}

func failure(name string, err error, config *Config) FileOutput {
	out := FileOutput{Resource: name, Error: err.Error()}

	var serr *em.StructuralError
	if errors.As(err, &serr) {
		out.Location = serr.Location
	}
	if config.Output == OutputText {
		fmt.Printf("== %s ==\nError: %v\n\n", name, err)
	}
	return out
}

func buildOutput(n element.Node) NodeOutput {
	out := NodeOutput{
		Name:     n.Name(),
		Type:     n.InstanceType(),
		Location: n.Location(),
	}
	if v := n.Value(); v != nil {
		out.Value = v.String()
	}
	for c := range n.Children() {
		out.Children = append(out.Children, buildOutput(c))
	}
	return out
}

func printTree(n element.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s (%s)", indent, n.Name(), n.InstanceType())
	if v := n.Value(); v != nil {
		line += fmt.Sprintf(" = %s", v)
	}
	fmt.Printf("%s  [%s]\n", line, n.Location())
	for c := range n.Children() {
		printTree(c, depth+1)
	}
}
