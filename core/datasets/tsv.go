package datasets

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/weiweivv2222/pykeen/core/triples"
)

// ReadTSV parses a tab-separated triple file with one
// head<TAB>relation<TAB>tail statement per line. Blank lines and lines
// starting with '#' are skipped.
func ReadTSV(path string) ([]triples.LabeledTriple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []triples.LabeledTriple
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: expected 3 tab-separated fields, got %d", path, lineNo, len(fields))
		}
		out = append(out, triples.LabeledTriple{Head: fields[0], Relation: fields[1], Tail: fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// RegisterTSV registers a dataset backed by three triple files sharing one
// vocabulary. The splits are encoded together so ids stay consistent.
func RegisterTSV(name, trainPath, validPath, testPath string) {
	Register(name, func() (*triples.Dataset, error) {
		train, err := ReadTSV(trainPath)
		if err != nil {
			return nil, err
		}
		valid, err := ReadTSV(validPath)
		if err != nil {
			return nil, err
		}
		test, err := ReadTSV(testPath)
		if err != nil {
			return nil, err
		}

		pooled := make([]triples.LabeledTriple, 0, len(train)+len(valid)+len(test))
		pooled = append(pooled, train...)
		pooled = append(pooled, valid...)
		pooled = append(pooled, test...)
		f, err := triples.FromLabeled(pooled)
		if err != nil {
			return nil, err
		}

		split := func(ts triples.TripleSet) *triples.Factory {
			return &triples.Factory{
				NumEntities:  f.NumEntities,
				NumRelations: f.NumRelations,
				Triples:      ts,
			}
		}
		return &triples.Dataset{
			Name:       name,
			Training:   split(f.Triples[:len(train)]),
			Validation: split(f.Triples[len(train) : len(train)+len(valid)]),
			Testing:    split(f.Triples[len(train)+len(valid):]),
		}, nil
	})
}
