package tools

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"
)

// LizardFunction is one row of lizard's CSV output
type LizardFunction struct {
	NLOC       int
	Complexity int
	TokenCount int
	Name       string
	File       string
	StartLine  int
}

// RunLizard runs lizard in CSV mode over the codebase. Used as a complexity
// fallback when the native tree-sitter analysis cannot parse anything.
func RunLizard(ctx context.Context, codebasePath string, timeout time.Duration) ([]LizardFunction, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	stdout, _, err := run(ctx, timeout, "", "lizard", "--csv", codebasePath)
	if err != nil {
		return nil, err
	}
	return ParseLizardCSV(stdout), nil
}

// ParseLizardCSV parses lizard CSV rows:
// NLOC,CCN,token,PARAM,length,location,file,function,long_name,row,col
// The long_name field is quoted and may contain commas.
func ParseLizardCSV(output string) []LizardFunction {
	reader := csv.NewReader(strings.NewReader(output))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var functions []LizardFunction
	for {
		fields, err := reader.Read()
		if err != nil {
			break
		}
		if len(fields) < 8 {
			continue
		}
		nloc, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // header or malformed row
		}
		ccn, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		tokens, _ := strconv.Atoi(fields[2])
		startLine := 0
		if len(fields) > 9 {
			startLine, _ = strconv.Atoi(fields[9])
		}
		functions = append(functions, LizardFunction{
			NLOC:       nloc,
			Complexity: ccn,
			TokenCount: tokens,
			File:       fields[6],
			Name:       fields[7],
			StartLine:  startLine,
		})
	}
	return functions
}
