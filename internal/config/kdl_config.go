package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL loads a `.gscan.kdl` file from projectRoot. Returns (nil, nil)
// when the file does not exist, the way the teacher's LoadKDL treats a
// missing `.lci.kdl` as "use defaults" rather than an error.
func LoadKDL(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ".gscan.kdl")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gscan.kdl: %w", err)
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "pattern":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "raw":
					if s, ok := firstStringArg(cn); ok {
						cfg.Pattern.Raw = s
					}
				case "use_regex":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Pattern.UseRegex = b
					}
				case "ignore_case":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Pattern.IgnoreCase = b
					}
				case "word":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Pattern.Word = b
					}
				}
			}
		case "encoding":
			for _, cn := range n.Children {
				if nodeName(cn) == "codepage" {
					if s, ok := firstStringArg(cn); ok {
						cfg.Encoding.CodePage = s
					}
				}
			}
		case "classify":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "text_only":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Classify.TextOnly = b
					}
				case "signatures":
					if s, ok := firstStringArg(cn); ok {
						cfg.Classify.SignaturesPath = s
					}
				}
			}
		case "output":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "result_path":
					if s, ok := firstStringArg(cn); ok {
						cfg.Output.ResultPath = s
					}
				case "quiet":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Output.Quiet = b
					}
				case "first_match_only":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Output.FirstMatchOnly = b
					}
				case "output_matched_part":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Output.OutputMatchedPart = b
					}
				}
			}
		case "run":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "parallelism":
					if v, ok := firstIntArg(cn); ok {
						cfg.Run.Parallelism = v
					}
				case "debug":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Run.Debug = b
					}
				}
			}
		}
	}

	return cfg, nil
}

// Helper functions over the kdl-go document model, copied in shape from
// the teacher's parseKDL helpers.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
