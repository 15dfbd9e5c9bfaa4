package archive

import "errors"

// SkipChildren returned from a WalkFunc skips the children of the current node.
var SkipChildren = errors.New("skip children")

// Level identifies the depth of a Node.
type Level int

const (
	LevelArchive Level = iota
	LevelProgram
	LevelCourse
	LevelAssignment
)

func (l Level) String() string {
	switch l {
	case LevelArchive:
		return "archive"
	case LevelProgram:
		return "program"
	case LevelCourse:
		return "course"
	default:
		return "assignment"
	}
}

// Node is the entity visited by Walk. Fields above the node's level are set;
// fields below it are nil.
type Node struct {
	Level      Level
	Archive    *Archive
	Program    *Program
	Course     *Course
	Assignment *Assignment
}

// Name returns the name of the visited entity.
func (n Node) Name() string {
	switch n.Level {
	case LevelArchive:
		return n.Archive.Name()
	case LevelProgram:
		return n.Program.Name()
	case LevelCourse:
		return n.Course.Name()
	default:
		return n.Assignment.Name()
	}
}

// WalkFunc is called for every node in depth-first, name-sorted order.
type WalkFunc func(Node) error

// Walk visits archives and their descendants using src for enumeration. It
// stops at the first error from fn other than SkipChildren.
func Walk(src Source, archives []*Archive, fn WalkFunc) error {
	if src == nil {
		src = Direct{}
	}
	w := walker{src: src, fn: fn}
	for _, a := range archives {
		if err := w.archive(a); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	src Source
	fn  WalkFunc
}

func (w walker) archive(a *Archive) error {
	descend, err := w.visit(Node{Level: LevelArchive, Archive: a})
	if err != nil || !descend {
		return err
	}
	for _, p := range w.src.Programs(a) {
		if err := w.program(a, p); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) program(a *Archive, p *Program) error {
	descend, err := w.visit(Node{Level: LevelProgram, Archive: a, Program: p})
	if err != nil || !descend {
		return err
	}
	for _, c := range w.src.Courses(p) {
		if err := w.course(a, p, c); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) course(a *Archive, p *Program, c *Course) error {
	descend, err := w.visit(Node{Level: LevelCourse, Archive: a, Program: p, Course: c})
	if err != nil || !descend {
		return err
	}
	for _, as := range w.src.Assignments(c) {
		if _, err := w.visit(Node{Level: LevelAssignment, Archive: a, Program: p, Course: c, Assignment: as}); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) visit(node Node) (bool, error) {
	err := w.fn(node)
	if errors.Is(err, SkipChildren) {
		return false, nil
	}
	return err == nil, err
}

// Courses returns every course under archives in walk order.
func Courses(src Source, archives []*Archive) []*Course {
	var out []*Course
	_ = Walk(src, archives, func(n Node) error {
		if n.Level == LevelCourse {
			out = append(out, n.Course)
			return SkipChildren
		}
		return nil
	})
	return out
}
