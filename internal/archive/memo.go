package archive

import (
	"slices"
	"sync"
)

// Source enumerates children. Direct reads the disk on every call; Memo
// caches.
type Source interface {
	Programs(*Archive) []*Program
	Courses(*Program) []*Course
	Assignments(*Course) []*Assignment
	Submissions(*Assignment) []Submission
	AssignmentStatus(*Assignment) Verdict
	CourseStatus(*Course) Verdict
}

// Direct is the uncached Source.
type Direct struct{}

func (Direct) Programs(a *Archive) []*Program         { return a.Programs() }
func (Direct) Courses(p *Program) []*Course           { return p.Courses() }
func (Direct) Assignments(c *Course) []*Assignment    { return c.Assignments() }
func (Direct) Submissions(a *Assignment) []Submission { return a.Submissions() }
func (Direct) AssignmentStatus(a *Assignment) Verdict { return a.Evaluate() }
func (Direct) CourseStatus(c *Course) Verdict         { return c.Evaluate() }

// Memo caches enumeration results and statuses by path for the lifetime of
// one run. It is safe for concurrent use. Entries never expire; build a new
// Memo when the tree may have changed.
type Memo struct {
	mu               sync.Mutex
	programs         map[string][]*Program
	courses          map[string][]*Course
	assignments      map[string][]*Assignment
	submissions      map[string][]Submission
	assignmentStatus map[string]Verdict
	courseStatus     map[string]Verdict
}

// NewMemo returns an empty Memo.
func NewMemo() *Memo {
	return &Memo{
		programs:         make(map[string][]*Program),
		courses:          make(map[string][]*Course),
		assignments:      make(map[string][]*Assignment),
		submissions:      make(map[string][]Submission),
		assignmentStatus: make(map[string]Verdict),
		courseStatus:     make(map[string]Verdict),
	}
}

// Programs returns the cached programs of a.
func (m *Memo) Programs(a *Archive) []*Program {
	return slices.Clone(memoize(m, m.programs, a.Path(), a.Programs))
}

// Courses returns the cached courses of p.
func (m *Memo) Courses(p *Program) []*Course {
	return slices.Clone(memoize(m, m.courses, p.Path(), p.Courses))
}

// Assignments returns the cached assignments of c.
func (m *Memo) Assignments(c *Course) []*Assignment {
	return slices.Clone(memoize(m, m.assignments, c.Path(), c.Assignments))
}

// Submissions returns the cached submissions of a.
func (m *Memo) Submissions(a *Assignment) []Submission {
	m.mu.Lock()
	items, ok := m.submissions[a.Path()]
	m.mu.Unlock()
	if !ok {
		m.inspectAssignment(a)
		m.mu.Lock()
		items = m.submissions[a.Path()]
		m.mu.Unlock()
	}
	return slices.Clone(items)
}

// AssignmentStatus returns the cached verdict of a.
func (m *Memo) AssignmentStatus(a *Assignment) Verdict {
	m.mu.Lock()
	v, ok := m.assignmentStatus[a.Path()]
	m.mu.Unlock()
	if ok {
		return v
	}
	return m.inspectAssignment(a)
}

// inspectAssignment stores the verdict and, when the waterfall got as far as
// reading the table, the submissions from the same read.
func (m *Memo) inspectAssignment(a *Assignment) Verdict {
	result := a.inspect()
	v, items := result.verdict, result.submissions
	if !result.tableRead {
		items = a.Submissions()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.assignmentStatus[a.Path()]; ok {
		return cached
	}
	m.assignmentStatus[a.Path()] = v
	if _, ok := m.submissions[a.Path()]; !ok {
		m.submissions[a.Path()] = items
	}
	return v
}

// CourseStatus returns the cached verdict of c, rolling up cached
// assignment verdicts.
func (m *Memo) CourseStatus(c *Course) Verdict {
	m.mu.Lock()
	v, ok := m.courseStatus[c.Path()]
	m.mu.Unlock()
	if ok {
		return v
	}
	v = c.evaluate(func() []*Assignment { return m.Assignments(c) }, m.AssignmentStatus)
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.courseStatus[c.Path()]; ok {
		return cached
	}
	m.courseStatus[c.Path()] = v
	return v
}

// memoize computes outside the lock so slow disk reads do not serialize
// unrelated callers. The first stored result wins.
func memoize[T any](m *Memo, cache map[string][]T, key string, load func() []T) []T {
	m.mu.Lock()
	items, ok := cache[key]
	m.mu.Unlock()
	if ok {
		return items
	}
	items = load()
	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := cache[key]; ok {
		return cached
	}
	cache[key] = items
	return items
}
