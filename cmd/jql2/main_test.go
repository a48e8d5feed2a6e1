package main

import (
	"bytes"
	"log"
	"os/exec"
	"regexp"
	"runtime"
	"testing"
)

var EXE string

// init builds a `jql2` binary for testing.
func init() {
	if runtime.GOOS == "windows" {
		EXE = ".\\jql2-for-test.exe"
	} else {
		EXE = "./jql2-for-test"
	}
	c := exec.Command("go", "build", "-o", EXE, ".")
	err := c.Run()
	if err != nil {
		log.Fatal(err)
	}
}

type mainTestCase struct {
	name     string
	argv     []string
	exitCode int
	stdout   *regexp.Regexp
	stderr   *regexp.Regexp
}

var mainTestCases = []mainTestCase{
	{
		"jql2 --version",
		[]string{"jql2", "--version"},
		0,
		regexp.MustCompile(`^jql2 \d+\.\d+\.\d+\nhttps://`),
		nil,
	},
	{
		"jql2 --help",
		[]string{"jql2", "--help"},
		0,
		regexp.MustCompile(`(?s)^usage: jql2.*options:.*--help`),
		nil,
	},
	{
		"jql2 --bogus",
		[]string{"jql2", "--bogus"},
		2,
		nil,
		nil,
	},
	{
		"jql2 missing QUERY argument",
		[]string{"jql2", "--no-config", "--color=none"},
		2,
		nil,
		regexp.MustCompile(`missing QUERY argument`),
	},
	{
		"jql2 canonicalizes a simple query",
		[]string{"jql2", "--no-config", "--color=none",
			"select * from [nt:base] where jcr:title = 'x'"},
		0,
		regexp.MustCompile(`^SELECT \* FROM \[nt:base\] WHERE \[jcr:title\]='x'\n$`),
		nil,
	},
	{
		"jql2 rejects a query with no FROM clause",
		[]string{"jql2", "--no-config", "--color=none", "SELECT * WHERE a = 'b'"},
		1,
		nil,
		regexp.MustCompile(`jql2: invalid query: missing FROM clause`),
	},
	{
		"jql2 substitutes bind variables from --explain --vars",
		[]string{"jql2", "--no-config", "--color=none",
			"--explain", "--vars", "./testdata/vars.json",
			"select * from [nt:base] where jcr:title = $title"},
		0,
		regexp.MustCompile(`^SELECT \* FROM \[nt:base\] WHERE \[jcr:title\]='hello'\n$`),
		nil,
	},
	{
		"jql2 rejects --vars without --explain",
		[]string{"jql2", "--no-config", "--color=none",
			"--vars", "./testdata/vars.json",
			"select * from [nt:base] where jcr:title = $title"},
		2,
		nil,
		regexp.MustCompile(`--vars requires --explain`),
	},
}

func TestMain(t *testing.T) {
	for _, tc := range mainTestCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Logf("-- `jql2` test case %q\n", tc.name)
			t.Logf("  argv: %q\n", tc.argv)
			exe := tc.argv[0]
			if exe == "jql2" {
				exe = EXE
			}
			cmd := exec.Command(exe, tc.argv[1:]...)
			var e bytes.Buffer
			var o bytes.Buffer
			cmd.Stderr = &e
			cmd.Stdout = &o
			err := cmd.Run()
			stderr := e.Bytes()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tc.exitCode {
						t.Errorf(
							"test case %q:\n"+
								"argv:\n"+
								"\t%q\n"+
								"want exitCode:\n"+
								"\t%v\n"+
								"got exitCode:\n"+
								"\t%v\n"+
								"with stderr:\n"+
								"\t%q\n",
							tc.name, tc.argv, tc.exitCode, exitErr.ExitCode(), stderr)
					}
				} else {
					t.Errorf(
						"test case %q:\n"+
							"argv:\n"+
							"\t%q\n"+
							"err:\n"+
							"\t%v\n",
						tc.name, tc.argv, err)
				}
			} else if tc.exitCode != 0 {
				t.Errorf(
					"test case %q:\n"+
						"argv:\n"+
						"\t%q\n"+
						"want exitCode:\n"+
						"\t%v\n"+
						"got no error\n",
					tc.name, tc.argv, tc.exitCode)
			}
			if tc.stderr != nil && !tc.stderr.Match(stderr) {
				t.Errorf(
					"test case %q:\n"+
						"argv:\n"+
						"\t%q\n"+
						"want stderr to match:\n"+
						"\t%s\n"+
						"got stderr:\n"+
						"\t%q\n",
					tc.name, tc.argv, tc.stderr, stderr)
			}
			stdout := o.Bytes()
			if tc.stdout != nil && !tc.stdout.Match(stdout) {
				t.Errorf(
					"test case %q:\n"+
						"argv:\n"+
						"\t%q\n"+
						"want stdout to match:\n"+
						"\t%q\n"+
						"got stdout:\n"+
						"\t%q\n",
					tc.name, tc.argv, tc.stdout, stdout)
			}
		})
	}
}
