package archive_test

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"daspub/internal/archive"
	"daspub/internal/testsupport"
)

const courseMetadata = "==Description\nStudio course\n==Instructors\nJane Doe\n"

func completeRow(id string) []string {
	return testsupport.SubmissionRow("2024", "Student "+id, id+".jpg", id, "High Pass")
}

func TestCourseRollup(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	layout := newLayout()

	t.Run("missing metadata", func(t *testing.T) {
		dir := tree.Dir("P", "100-Bare")
		tree.Assignment("P", "100-Bare", "A", completeRow("a1"))
		v := archive.NewCourse(layout, dir).Evaluate()
		if v.Status != archive.StatusIncomplete || v.Reason != "missing course metadata file" {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("no assignments", func(t *testing.T) {
		dir := tree.Course("P", "101-Empty", courseMetadata)
		v := archive.NewCourse(layout, dir).Evaluate()
		if v.Status != archive.StatusIncomplete || v.Reason != "no assignments" {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("all complete", func(t *testing.T) {
		dir := tree.Course("P", "102-Done", courseMetadata)
		tree.Assignment("P", "102-Done", "A", completeRow("a1"))
		tree.Assignment("P", "102-Done", "B", completeRow("b1"))
		if got := archive.NewCourse(layout, dir).Status(); got != archive.StatusComplete {
			t.Fatalf("got %s", got)
		}
	})

	t.Run("first failing assignment decides", func(t *testing.T) {
		dir := tree.Course("P", "103-Mixed", courseMetadata)
		tree.Assignment("P", "103-Mixed", "A", completeRow("a1"))
		tree.Assignment("P", "103-Mixed", "B")
		tree.Dir("P", "103-Mixed", "C")
		v := archive.NewCourse(layout, dir).Evaluate()
		if v.Status != archive.StatusPartial || !strings.Contains(v.Reason, `"B"`) {
			t.Fatalf("got %+v", v)
		}
	})

	t.Run("incomplete assignment", func(t *testing.T) {
		dir := tree.Course("P", "104-Open", courseMetadata)
		tree.Dir("P", "104-Open", "A")
		tree.Assignment("P", "104-Open", "B")
		v := archive.NewCourse(layout, dir).Evaluate()
		if v.Status != archive.StatusIncomplete || !strings.Contains(v.Reason, `"A"`) {
			t.Fatalf("got %+v", v)
		}
	})
}

func buildWalkTree(t *testing.T) *testsupport.ArchiveTree {
	t.Helper()
	tree := testsupport.NewArchiveTree(t)
	tree.Course("Architecture", "201-Structures", courseMetadata)
	tree.Assignment("Architecture", "201-Structures", "Bridge", completeRow("b1"))
	tree.Course("Architecture", "101-Studio", courseMetadata)
	tree.Assignment("Architecture", "101-Studio", "Poster", completeRow("p1"), completeRow("p2"))
	tree.Assignment("Architecture", "101-Studio", "Model")
	tree.Course("Landscape", "110-Gardens", courseMetadata)
	return tree
}

func TestWalkVisitsInNameOrder(t *testing.T) {
	tree := buildWalkTree(t)
	archives, err := archive.OpenArchives(newLayout(), []string{tree.Root})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var visited []string
	err = archive.Walk(nil, archives, func(n archive.Node) error {
		visited = append(visited, n.Level.String()+":"+n.Name())
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []string{
		"archive:archive",
		"program:Architecture",
		"course:101-Studio",
		"assignment:Model",
		"assignment:Poster",
		"course:201-Structures",
		"assignment:Bridge",
		"program:Landscape",
		"course:110-Gardens",
	}
	if !reflect.DeepEqual(visited, want) {
		t.Fatalf("unexpected walk order:\n got %v\nwant %v", visited, want)
	}
}

func TestWalkSkipChildrenAndStop(t *testing.T) {
	tree := buildWalkTree(t)
	archives, _ := archive.OpenArchives(newLayout(), []string{tree.Root})

	var visited []string
	_ = archive.Walk(nil, archives, func(n archive.Node) error {
		visited = append(visited, n.Name())
		if n.Level == archive.LevelProgram && n.Name() == "Architecture" {
			return archive.SkipChildren
		}
		return nil
	})
	if want := []string{"archive", "Architecture", "Landscape", "110-Gardens"}; !reflect.DeepEqual(visited, want) {
		t.Fatalf("unexpected visits %v", visited)
	}

	stop := errors.New("stop")
	count := 0
	err := archive.Walk(nil, archives, func(n archive.Node) error {
		count++
		if n.Level == archive.LevelCourse {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 3 {
		t.Fatalf("expected walk to stop at the first course, got %v after %d visits", err, count)
	}

	courses := archive.Courses(nil, archives)
	if len(courses) != 3 || courses[0].Name() != "101-Studio" {
		t.Fatalf("unexpected courses %d", len(courses))
	}
}

func TestMemoMatchesDirect(t *testing.T) {
	tree := buildWalkTree(t)
	archives, _ := archive.OpenArchives(newLayout(), []string{tree.Root})
	memo := archive.NewMemo()

	var direct, cached []string
	collect := func(src archive.Source, out *[]string) {
		_ = archive.Walk(src, archives, func(n archive.Node) error {
			switch n.Level {
			case archive.LevelCourse:
				*out = append(*out, n.Name()+"="+src.CourseStatus(n.Course).Status.String())
			case archive.LevelAssignment:
				v := src.AssignmentStatus(n.Assignment)
				*out = append(*out, n.Name()+"="+v.Status.String()+"/"+v.Reason)
				for _, s := range src.Submissions(n.Assignment) {
					*out = append(*out, s.ID)
				}
			}
			return nil
		})
	}
	collect(archive.Direct{}, &direct)
	collect(memo, &cached)
	if !reflect.DeepEqual(direct, cached) {
		t.Fatalf("memo disagrees with direct:\n direct %v\n memo   %v", direct, cached)
	}
}

func TestMemoServesCachedResults(t *testing.T) {
	tree := buildWalkTree(t)
	layout := newLayout()
	course := archive.NewCourse(layout, tree.Path("Architecture", "201-Structures"))
	memo := archive.NewMemo()

	assignments := memo.Assignments(course)
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	bridge := assignments[0]
	if got := memo.AssignmentStatus(bridge).Status; got != archive.StatusComplete {
		t.Fatalf("expected complete, got %s", got)
	}
	if got := memo.CourseStatus(course).Status; got != archive.StatusComplete {
		t.Fatalf("expected complete course, got %s", got)
	}

	if err := os.Remove(tree.Path("Architecture", "201-Structures", "Bridge", "assignment.pdf")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tree.Dir("Architecture", "201-Structures", "Truss")

	if got := memo.AssignmentStatus(bridge).Status; got != archive.StatusComplete {
		t.Fatalf("memo should keep the cached verdict, got %s", got)
	}
	if got := len(memo.Assignments(course)); got != 1 {
		t.Fatalf("memo should keep the cached listing, got %d", got)
	}
	if got := len(memo.Submissions(bridge)); got != 1 {
		t.Fatalf("expected cached submission, got %d", got)
	}
	if got := bridge.Status(); got != archive.StatusIncomplete {
		t.Fatalf("direct evaluation should see the removal, got %s", got)
	}
	if got := archive.NewMemo().CourseStatus(course).Status; got != archive.StatusIncomplete {
		t.Fatalf("fresh memo should see the new assignment, got %s", got)
	}
}
