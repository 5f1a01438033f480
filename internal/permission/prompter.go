package permission

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StaticPrompter answers every request with the same result.
type StaticPrompter struct {
	Grant bool
}

// Prompt implements Prompter.
func (p StaticPrompter) Prompt(req Request) Response {
	result := Denied
	if p.Grant {
		result = Granted
	}

	results := make([]Result, len(req.Permissions))
	for i := range results {
		results[i] = result
	}

	return Response{RequestCode: req.Code, Permissions: req.Permissions, GrantResults: results}
}

// TerminalPrompter asks on a terminal. Anything but y or yes is a denial.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter.
func (p TerminalPrompter) Prompt(req Request) Response {
	resp := Response{RequestCode: req.Code, Permissions: req.Permissions}
	scanner := bufio.NewScanner(p.In)

	for _, perm := range req.Permissions {
		fmt.Fprintf(p.Out, "❔  Allow access to %s? [y/N] ", describe(perm))

		result := Denied
		if scanner.Scan() {
			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "y", "yes":
				result = Granted
			}
		}
		resp.GrantResults = append(resp.GrantResults, result)
	}

	return resp
}

func describe(perm string) string {
	if perm == ReadStorage {
		return "read raster packages from storage"
	}
	return perm
}
