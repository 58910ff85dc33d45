package sasio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lvlath-planner/sasplan/task"
)

// SupportedVersion is the only SAS+ protocol version this reader accepts.
const SupportedVersion = 3

// lineScanner is a thin cursor over pre-split, trimmed input lines. Its
// methods advance it and wrap failures in ErrMalformedInput, with
// line-number context where a line was read.
type lineScanner struct {
	lines []string
	pos   int
}

func newLineScanner(r io.Reader) (*lineScanner, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return &lineScanner{lines: lines}, nil
}

func (s *lineScanner) next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	line := s.lines[s.pos]
	s.pos++

	return line, nil
}

func (s *lineScanner) expect(marker string) error {
	line, err := s.next()
	if err != nil {
		return err
	}
	if line != marker {
		return fmt.Errorf("%w: expected %q, got %q at line %d", ErrMalformedInput, marker, line, s.pos)
	}

	return nil
}

func (s *lineScanner) nextInt() (int, error) {
	line, err := s.next()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return 0, fmt.Errorf("%w: expected integer, got %q at line %d", ErrMalformedInput, line, s.pos)
	}

	return n, nil
}

func (s *lineScanner) nextInts(count int) ([]int, error) {
	out := make([]int, count)
	for i := 0; i < count; i++ {
		line, err := s.next()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: expected single integer line, got %q at line %d", ErrMalformedInput, line, s.pos)
		}
		n, convErr := strconv.Atoi(fields[0])
		if convErr != nil {
			return nil, fmt.Errorf("%w: %v at line %d", ErrMalformedInput, convErr, s.pos)
		}
		out[i] = n
	}

	return out, nil
}

// fieldInts splits line on whitespace and parses every field as an int.
func fieldInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		out[i] = n
	}

	return out, nil
}

// Read parses a full SAS+ task from r, per SPEC_FULL.md §6 / spec.md §6.
func Read(r io.Reader) (*task.Task, error) {
	s, err := newLineScanner(r)
	if err != nil {
		return nil, err
	}

	version, err := readVersion(s)
	if err != nil {
		return nil, err
	}
	if version != SupportedVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, version, SupportedVersion)
	}

	useMetric, err := readMetric(s)
	if err != nil {
		return nil, err
	}

	variables, err := readVariables(s)
	if err != nil {
		return nil, err
	}

	mutexes, err := readMutexes(s)
	if err != nil {
		return nil, err
	}

	initial, err := readInitialState(s, len(variables))
	if err != nil {
		return nil, err
	}

	goal, err := readGoal(s)
	if err != nil {
		return nil, err
	}

	operators, err := readOperators(s)
	if err != nil {
		return nil, err
	}

	axioms, err := readAxioms(s)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		Variables:    variables,
		Operators:    operators,
		Axioms:       axioms,
		InitialState: initial,
		Goal:         goal,
		UseMetric:    useMetric,
		Mutexes:      mutexes,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func readVersion(s *lineScanner) (int, error) {
	if err := s.expect("begin_version"); err != nil {
		return 0, err
	}
	v, err := s.nextInt()
	if err != nil {
		return 0, err
	}
	if err := s.expect("end_version"); err != nil {
		return 0, err
	}

	return v, nil
}

func readMetric(s *lineScanner) (bool, error) {
	if err := s.expect("begin_metric"); err != nil {
		return false, err
	}
	m, err := s.nextInt()
	if err != nil {
		return false, err
	}
	if m != 0 && m != 1 {
		return false, fmt.Errorf("%w: metric flag must be 0 or 1, got %d", ErrMalformedInput, m)
	}
	if err := s.expect("end_metric"); err != nil {
		return false, err
	}

	return m == 1, nil
}

func readVariables(s *lineScanner) ([]task.Variable, error) {
	count, err := s.nextInt()
	if err != nil {
		return nil, err
	}

	vars := make([]task.Variable, count)
	for i := 0; i < count; i++ {
		if err := s.expect("begin_variable"); err != nil {
			return nil, err
		}
		name, err := s.next()
		if err != nil {
			return nil, err
		}
		layer, err := s.nextInt()
		if err != nil {
			return nil, err
		}
		domainSize, err := s.nextInt()
		if err != nil {
			return nil, err
		}
		if domainSize < 1 {
			return nil, fmt.Errorf("%w: variable %d", task.ErrInvalidDomainSize, i)
		}
		names := make([]string, domainSize)
		for j := 0; j < domainSize; j++ {
			fn, err := s.next()
			if err != nil {
				return nil, err
			}
			names[j] = fn
		}
		if err := s.expect("end_variable"); err != nil {
			return nil, err
		}

		vars[i] = task.Variable{
			Name:              name,
			DomainSize:        domainSize,
			FactNames:         names,
			AxiomLayer:        layer,
			DefaultAxiomValue: 0,
		}
	}

	return vars, nil
}

func readMutexes(s *lineScanner) (map[task.FactPair]map[task.FactPair]struct{}, error) {
	count, err := s.nextInt()
	if err != nil {
		return nil, err
	}

	mutexes := make(map[task.FactPair]map[task.FactPair]struct{})
	for i := 0; i < count; i++ {
		if err := s.expect("begin_mutex_group"); err != nil {
			return nil, err
		}
		k, err := s.nextInt()
		if err != nil {
			return nil, err
		}
		if k < 1 {
			return nil, fmt.Errorf("%w: mutex group %d has k=%d", ErrMalformedInput, i, k)
		}
		facts := make([]task.FactPair, k)
		seen := make(map[task.FactPair]struct{}, k)
		for j := 0; j < k; j++ {
			line, err := s.next()
			if err != nil {
				return nil, err
			}
			ints, err := fieldInts(line)
			if err != nil || len(ints) != 2 {
				return nil, fmt.Errorf("%w: mutex fact line %q", ErrMalformedInput, line)
			}
			f := task.FactPair{Var: ints[0], Value: ints[1]}
			if _, dup := seen[f]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateMutexFact, f)
			}
			seen[f] = struct{}{}
			facts[j] = f
		}
		if err := s.expect("end_mutex_group"); err != nil {
			return nil, err
		}

		for _, a := range facts {
			for _, b := range facts {
				if a == b {
					continue
				}
				if mutexes[a] == nil {
					mutexes[a] = make(map[task.FactPair]struct{})
				}
				mutexes[a][b] = struct{}{}
			}
		}
	}

	return mutexes, nil
}

func readInitialState(s *lineScanner, numVars int) ([]int, error) {
	if err := s.expect("begin_state"); err != nil {
		return nil, err
	}
	values, err := s.nextInts(numVars)
	if err != nil {
		return nil, err
	}
	if err := s.expect("end_state"); err != nil {
		return nil, err
	}

	return values, nil
}

func readGoal(s *lineScanner) ([]task.FactPair, error) {
	if err := s.expect("begin_goal"); err != nil {
		return nil, err
	}
	k, err := s.nextInt()
	if err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: goal must list k >= 1 facts", task.ErrEmptyGoal)
	}
	goal := make([]task.FactPair, k)
	for i := 0; i < k; i++ {
		line, err := s.next()
		if err != nil {
			return nil, err
		}
		ints, err := fieldInts(line)
		if err != nil || len(ints) != 2 {
			return nil, fmt.Errorf("%w: goal fact line %q", ErrMalformedInput, line)
		}
		goal[i] = task.FactPair{Var: ints[0], Value: ints[1]}
	}
	if err := s.expect("end_goal"); err != nil {
		return nil, err
	}

	return goal, nil
}

func readOperators(s *lineScanner) ([]task.Operator, error) {
	count, err := s.nextInt()
	if err != nil {
		return nil, err
	}

	ops := make([]task.Operator, count)
	for i := 0; i < count; i++ {
		op, err := readOneOperator(s)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}

	return ops, nil
}

func readOneOperator(s *lineScanner) (task.Operator, error) {
	var op task.Operator

	if err := s.expect("begin_operator"); err != nil {
		return op, err
	}
	name, err := s.next()
	if err != nil {
		return op, err
	}
	op.Name = name

	numPre, err := s.nextInt()
	if err != nil {
		return op, err
	}
	pre := make([]task.FactPair, numPre)
	for i := 0; i < numPre; i++ {
		line, err := s.next()
		if err != nil {
			return op, err
		}
		ints, err := fieldInts(line)
		if err != nil || len(ints) != 2 {
			return op, fmt.Errorf("%w: operator %q precondition line %q", ErrMalformedInput, name, line)
		}
		pre[i] = task.FactPair{Var: ints[0], Value: ints[1]}
	}
	op.Preconditions = pre

	numEff, err := s.nextInt()
	if err != nil {
		return op, err
	}
	effects := make([]task.Effect, numEff)
	required := make(map[int]bool, numPre)
	for _, p := range op.Preconditions {
		required[p.Var] = true
	}
	for i := 0; i < numEff; i++ {
		line, err := s.next()
		if err != nil {
			return op, err
		}
		ints, err := fieldInts(line)
		if err != nil || len(ints) < 3 {
			return op, fmt.Errorf("%w: operator %q effect line %q", ErrMalformedInput, name, line)
		}
		c := ints[0]
		if len(ints) != 1+2*c+3 {
			return op, fmt.Errorf("%w: operator %q effect field-count mismatch", ErrMalformedInput, name)
		}
		conds := make([]task.EffectCondition, c)
		for j := 0; j < c; j++ {
			conds[j] = task.FactPair{Var: ints[1+2*j], Value: ints[2+2*j]}
		}
		affectedVar := ints[1+2*c]
		preVal := ints[1+2*c+1]
		postVal := ints[1+2*c+2]
		effects[i] = task.Effect{
			Fact:       task.FactPair{Var: affectedVar, Value: postVal},
			Conditions: conds,
		}
		// preVal != -1 is a genuine precondition on affectedVar
		// (original_source/src/search/tasks/root_task.cc:189-191), not mere
		// documentation: an operator that writes a variable it also
		// requires (e.g. blocks-world stack/unstack) is only applicable
		// where that requirement already holds.
		if preVal != -1 && !required[affectedVar] {
			op.Preconditions = append(op.Preconditions, task.FactPair{Var: affectedVar, Value: preVal})
			required[affectedVar] = true
		}
	}
	op.Effects = effects
	op.Preconditions = sortedCopy(op.Preconditions)

	cost, err := s.nextInt()
	if err != nil {
		return op, err
	}
	op.Cost = cost

	if err := s.expect("end_operator"); err != nil {
		return op, err
	}

	return op, nil
}

func readAxioms(s *lineScanner) ([]task.Operator, error) {
	count, err := s.nextInt()
	if err != nil {
		return nil, err
	}

	axioms := make([]task.Operator, count)
	for i := 0; i < count; i++ {
		ax, err := readOneAxiom(s)
		if err != nil {
			return nil, err
		}
		axioms[i] = ax
	}

	return axioms, nil
}

func readOneAxiom(s *lineScanner) (task.Operator, error) {
	var ax task.Operator
	ax.IsAxiom = true
	ax.Cost = 0

	if err := s.expect("begin_rule"); err != nil {
		return ax, err
	}
	numConds, err := s.nextInt()
	if err != nil {
		return ax, err
	}
	conds := make([]task.FactPair, numConds)
	for i := 0; i < numConds; i++ {
		line, err := s.next()
		if err != nil {
			return ax, err
		}
		ints, err := fieldInts(line)
		if err != nil || len(ints) != 2 {
			return ax, fmt.Errorf("%w: axiom condition line %q", ErrMalformedInput, line)
		}
		conds[i] = task.FactPair{Var: ints[0], Value: ints[1]}
	}

	effLine, err := s.next()
	if err != nil {
		return ax, err
	}
	ints, err := fieldInts(effLine)
	if err != nil || len(ints) != 3 {
		return ax, fmt.Errorf("%w: axiom head line %q", ErrMalformedInput, effLine)
	}
	// ints = [var, prev_value, post_value]. prev_value != -1 is a genuine
	// precondition on the derived variable itself, mirroring the operator
	// effect's pre_val field (original_source/.../root_task.cc:202-204).
	affectedVar, prevVal, postVal := ints[0], ints[1], ints[2]
	ax.Name = fmt.Sprintf("axiom(var%d:=%d)", affectedVar, postVal)
	required := make(map[int]bool, len(conds))
	for _, c := range conds {
		required[c.Var] = true
	}
	if prevVal != -1 && !required[affectedVar] {
		conds = append(conds, task.FactPair{Var: affectedVar, Value: prevVal})
	}
	ax.Preconditions = sortedCopy(conds)
	ax.Effects = []task.Effect{{Fact: task.FactPair{Var: affectedVar, Value: postVal}}}

	if err := s.expect("end_rule"); err != nil {
		return ax, err
	}

	return ax, nil
}

func sortedCopy(facts []task.FactPair) []task.FactPair {
	out := append([]task.FactPair{}, facts...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Var > out[j].Var; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}
