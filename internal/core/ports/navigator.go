package ports

// Navigator is the routing primitive guards use for redirects. Navigate is
// fire-and-forget; its result is never awaited.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }
