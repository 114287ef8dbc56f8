package core_test

import (
	"context"
	"fmt"

	"github.com/go-drift/sparkle/pkg/core"
	"github.com/go-drift/sparkle/pkg/dispatch"
	"github.com/go-drift/sparkle/pkg/dom"
	"github.com/go-drift/sparkle/pkg/event"
	"github.com/go-drift/sparkle/pkg/resource"
)

// This example shows ownership and placement combined with Emplace, and how
// destroying the parent tears the child down.
func ExampleUnit_Emplace() {
	page := core.New()
	child, _ := page.Emplace(core.Of())

	fmt.Println(dom.Render(page.Root()))

	page.Destroy()
	fmt.Println(child.Base().Destroyed())

	// Output:
	// <div><div></div></div>
	// true
}

// This example shows a unit whose markup is loaded from a template. The
// splice runs on a task queue standing in for the UI loop.
func ExampleWithTemplate() {
	templates := resource.FetcherFunc(func(ctx context.Context, locator string) (string, error) {
		return "<h1>Hello</h1>", nil
	})
	loop := dispatch.NewQueue(8)

	u := core.New(core.WithTemplate("/hello.html"), core.WithFetcher(templates), core.WithDispatcher(loop))
	u.On(event.Ready, func(*event.Event) { fmt.Println("ready") })

	_ = loop.RunUntil(context.Background(), u.Ready().Done())
	fmt.Println(dom.Render(u.Root()))

	// Output:
	// ready
	// <div><h1>Hello</h1></div>
}

// This example shows a slot replacing its child.
func ExampleSlot_Install() {
	slot := core.NewSlot()
	first, _ := slot.Install(core.Of())
	second, _ := slot.Install(core.Of())

	fmt.Println(first.Base().Destroyed(), second == slot.Current())

	// Output:
	// true true
}

// This example shows the notifications of a collection.
func ExampleCollection() {
	list := core.NewCollection(core.WithRoot(dom.CreateElement("ul", nil)))
	list.On(event.Added, func(e *event.Event) { fmt.Println("added") })
	list.On(event.Deleted, func(e *event.Event) { fmt.Println("deleted") })

	item, _ := list.Add(core.Of(core.WithRoot(dom.CreateElement("li", nil))))
	fmt.Println(dom.Render(list.Root()))

	list.Delete(item)
	fmt.Println(list.Len())

	// Output:
	// added
	// <ul><li></li></ul>
	// deleted
	// 0
}

// This example shows a form vetoing its own submission.
func ExampleForm_RequestSubmit() {
	form := core.NewForm()
	form.On(event.Submit, func(e *event.Event) {
		fmt.Println("validating")
		e.PreventDefault()
	})
	form.On(event.Submitted, func(*event.Event) { fmt.Println("submitted") })

	fmt.Println(form.RequestSubmit())

	// Output:
	// validating
	// false
}
