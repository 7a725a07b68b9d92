package orion

import "fmt"

// Handle panics if err is set. Use it where a failure is a broken contract
// rather than a runtime condition, like creating a resource after startup.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}
