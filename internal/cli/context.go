package cli

import (
	"github.com/Kanishkaanand/One-Thing-Focus/internal/app"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/notifier"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/storage"
)

// Context is the shared state handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	App      *app.App
	Notifier *notifier.Notifier
	Debug    bool
}
