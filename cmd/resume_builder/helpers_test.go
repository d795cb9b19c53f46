package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sampleResume = `PROFESSIONAL SUMMARY
Backend engineer who ships reliable services.

TECHNICAL SKILLS
Languages: Go, Python
Docker

EXPERIENCE
Senior Engineer | Acme Corp | 2020 - Present
- Built the billing pipeline
- Cut p99 latency by 40%

EDUCATION
B.S. Computer Science
State University
2018
`

// executeCommand runs the CLI in-process with fresh flag values.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeFallback(t *testing.T, dir string, fb types.Fallback) string {
	t.Helper()
	raw, err := json.Marshal(fb)
	require.NoError(t, err)
	return writeFile(t, dir, "fallback.json", string(raw))
}

func sampleFallback() types.Fallback {
	return types.Fallback{
		Skills:   "Kubernetes, Terraform",
		Projects: "Resume Builder\nParses resumes into structured data\nGo, PostgreSQL",
		Contact: types.Contact{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
		},
	}
}

func readResumeData(t *testing.T, path string) types.ResumeData {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var data types.ResumeData
	require.NoError(t, json.Unmarshal(raw, &data))
	return data
}
