package di

import (
	reminderService "github.com/evowilliamson/todo/internal/domains/reminder/service"
	"github.com/evowilliamson/todo/transport/http"
)

// App bundles the long-running pieces of the service: the HTTP server
// and the reminder sweeper.
type App struct {
	HTTP    *http.HTTP
	Sweeper *reminderService.Sweeper
}
