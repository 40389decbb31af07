// Package trace reads valgrind memory traces into access records.
//
// A valgrind trace contains one record per line. Data records start with a
// space, such as " L 7ff0005c8,8"; instruction fetch records start with "I"
// in the first column. Only data records are replayed; everything else is
// filtered out before it reaches the simulator.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Kind is the kind of a memory operation.
type Kind int

// The access kinds that the simulator replays. A Modify is a load
// immediately followed by a store to the same address.
const (
	Load Kind = iota
	Store
	Modify
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "L"
	case Store:
		return "S"
	case Modify:
		return "M"
	default:
		return "?"
	}
}

// An Access is one memory operation replayed from a trace.
type Access struct {
	Kind    Kind
	Address uint64
}

// A Reader parses accesses out of a valgrind trace.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
}

// NewReader creates a Reader that parses the trace text from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// ReadAll parses the whole trace in order. Instruction fetch records and
// records of unknown kinds are skipped, matching what valgrind-based cache
// simulators simulate. A record with an unparsable address is an error.
func (r *Reader) ReadAll() ([]Access, error) {
	var accesses []Access

	for r.scanner.Scan() {
		r.lineNum++
		line := r.scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		// Instruction fetch records start in the first column.
		if !strings.HasPrefix(line, " ") {
			continue
		}

		access, ok, err := parseDataRecord(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}

		if ok {
			accesses = append(accesses, access)
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return accesses, nil
}

// ReadFile parses the valgrind trace stored at path.
func ReadFile(path string) ([]Access, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	accesses, err := NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return accesses, nil
}

func parseDataRecord(record string) (Access, bool, error) {
	fields := strings.Fields(record)
	if len(fields) != 2 {
		return Access{}, false, fmt.Errorf("malformed record %q", record)
	}

	var kind Kind
	switch fields[0] {
	case "L":
		kind = Load
	case "S":
		kind = Store
	case "M":
		kind = Modify
	default:
		return Access{}, false, nil
	}

	addrField, _, _ := strings.Cut(fields[1], ",")
	addr, err := strconv.ParseUint(addrField, 16, 64)
	if err != nil {
		return Access{}, false, fmt.Errorf("bad address %q", addrField)
	}

	return Access{Kind: kind, Address: addr}, true, nil
}
