package demo

import (
	"strconv"
	"strings"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/router"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Todo is one entry of the todo list.
type Todo struct {
	ID    int
	Title string
	Done  bool
}

// Filter selects which todos are listed.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

func (f Filter) match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Done
	case FilterDone:
		return t.Done
	default:
		return true
	}
}

// Todos returns a copy of the todo list without subscribing.
func (a *App) Todos() []Todo {
	todos := a.todos.Peek()
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}

// AddTodo appends a todo and clears the draft. Blank titles are ignored.
// It returns the new todo's ID, or 0 when nothing was added.
func (a *App) AddTodo(title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0
	}

	a.nextID++
	id := a.nextID
	a.rt.Batch(func() {
		a.todos.Update(func(todos []Todo) []Todo {
			next := make([]Todo, len(todos), len(todos)+1)
			copy(next, todos)
			return append(next, Todo{ID: id, Title: title})
		})
		a.draft.Set("")
	})
	a.logger.Debug("todo added", "id", id, "title", title)
	return id
}

// Toggle flips the done state of the todo with the given ID.
func (a *App) Toggle(id int) {
	a.editTodos(func(todos []Todo) []Todo {
		for i := range todos {
			if todos[i].ID == id {
				todos[i].Done = !todos[i].Done
			}
		}
		return todos
	})
}

// Remove deletes the todo with the given ID.
func (a *App) Remove(id int) {
	a.editTodos(func(todos []Todo) []Todo {
		out := todos[:0]
		for _, t := range todos {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

// Reverse reverses the list order. Rows keep their retained nodes and are
// moved rather than rebuilt.
func (a *App) Reverse() {
	a.editTodos(func(todos []Todo) []Todo {
		for i, j := 0, len(todos)-1; i < j; i, j = i+1, j-1 {
			todos[i], todos[j] = todos[j], todos[i]
		}
		return todos
	})
}

// ClearDone removes every completed todo.
func (a *App) ClearDone() {
	a.editTodos(func(todos []Todo) []Todo {
		out := todos[:0]
		for _, t := range todos {
			if !t.Done {
				out = append(out, t)
			}
		}
		return out
	})
}

// SetFilter changes which todos are listed.
func (a *App) SetFilter(f Filter) {
	a.filter.Set(f)
}

// editTodos applies fn to a private copy of the list so the signal sees a
// new value.
func (a *App) editTodos(fn func([]Todo) []Todo) {
	a.todos.Update(func(todos []Todo) []Todo {
		next := make([]Todo, len(todos))
		copy(next, todos)
		return fn(next)
	})
}

func (a *App) todosPage(router.Params) *vdom.VNode {
	todos := a.todos.Get()
	filter := a.filter.Get()

	left := 0
	var visible []Todo
	for _, t := range todos {
		if !t.Done {
			left++
		}
		if filter.match(t) {
			visible = append(visible, t)
		}
	}

	return vdom.Section(vdom.ID("todos"),
		vdom.H1("Todos"),
		vdom.Div(
			vdom.Input(
				vdom.ID("new-todo"),
				vdom.Placeholder("What needs doing?"),
				vdom.Value(a.draft.Get()),
				vdom.Autofocus(true),
				vdom.OnInput(a.draft.Set),
				vdom.OnKeyDown(func(ev dom.Event) {
					if ev.Key == "Enter" {
						a.AddTodo(a.draft.Peek())
					}
				}),
			),
			vdom.Button(vdom.ID("add-todo"), vdom.OnClick(func() { a.AddTodo(a.draft.Peek()) }), "Add"),
		),
		vdom.Div(vdom.Class("filters"),
			a.filterButton(FilterAll, filter),
			a.filterButton(FilterActive, filter),
			a.filterButton(FilterDone, filter),
		),
		vdom.IfElse(len(visible) == 0,
			vdom.P(vdom.ID("empty"), "Nothing to do."),
			vdom.Ul(vdom.ID("todo-list"),
				vdom.Range(visible, func(t Todo, _ int) *vdom.VNode {
					return a.todoItem(t)
				}),
			),
		),
		vdom.Footer(
			vdom.Span(vdom.ID("todo-count"), vdom.Textf("%d %s left", left, plural(left, "item", "items"))),
			vdom.Button(vdom.ID("reverse"), vdom.Disabled(len(todos) < 2), vdom.OnClick(a.Reverse), "Reverse"),
			vdom.When(left < len(todos), func() *vdom.VNode {
				return vdom.Button(vdom.ID("clear-done"), vdom.OnClick(a.ClearDone), "Clear done")
			}),
		),
	)
}

func (a *App) todoItem(t Todo) *vdom.VNode {
	id := strconv.Itoa(t.ID)
	return vdom.Li(vdom.Key(t.ID), vdom.ClassIf(t.Done, "done"),
		vdom.Input(
			vdom.ID("toggle-"+id),
			vdom.Type("checkbox"),
			vdom.Checked(t.Done),
			vdom.OnClick(func() { a.Toggle(t.ID) }),
		),
		" ",
		a.router.Link("/todos/"+id, t.Title),
		" ",
		vdom.Button(vdom.ID("remove-"+id), vdom.AriaLabel("Remove "+t.Title), vdom.OnClick(func() { a.Remove(t.ID) }), "×"),
	)
}

func (a *App) filterButton(f, current Filter) *vdom.VNode {
	return vdom.Button(
		vdom.ID("filter-"+string(f)),
		vdom.ClassIf(f == current, "selected"),
		vdom.OnClick(func() { a.SetFilter(f) }),
		string(f),
	)
}

func (a *App) todoPage(p router.Params) *vdom.VNode {
	id, err := p.Int("id")
	if err != nil {
		return a.notFoundPage(router.Params{"path": "/todos/" + p.Get("id")})
	}

	for _, t := range a.todos.Get() {
		if t.ID != id {
			continue
		}
		status := "open"
		if t.Done {
			status = "done"
		}
		return vdom.Section(vdom.ID("todo-detail"),
			vdom.H1(t.Title),
			vdom.P("Status: ", vdom.Span(vdom.ID("status"), status)),
			vdom.Button(vdom.ID("toggle"), vdom.OnClick(func() { a.Toggle(t.ID) }),
				vdom.IfElse(t.Done, vdom.Text("Reopen"), vdom.Text("Mark done"))),
			" ",
			a.router.Link("/todos", "All todos"),
		)
	}

	return vdom.Section(vdom.ID("todo-detail"),
		vdom.H1("Unknown todo"),
		vdom.P(vdom.Textf("There is no todo #%d.", id)),
		a.router.Link("/todos", "All todos"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
