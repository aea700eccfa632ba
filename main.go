package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-manager/modules/api"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())
	app.Register(task.NewModule()) // Depends on auth
	app.Register(api.NewModule())  // Depends on auth and task

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Task manager started!")
	log.Println("")
	log.Println("Public endpoints (http://localhost:3000):")
	log.Println("  POST /api/user/registerUser  - Register a new user")
	log.Println("  POST /api/user/loginUser     - Login and get a token")
	log.Println("  GET  /health                 - Health check")
	log.Println("")
	log.Println("Protected endpoints (require the token header):")
	log.Println("  POST /api/task/create                - Create a task")
	log.Println("  GET  /api/task/alltasks              - List your tasks")
	log.Println("  GET  /api/task/gettask?taskId=       - Get a task")
	log.Println("  PUT  /api/task/update?taskId=        - Update a task")
	log.Println("  POST /api/task/done                  - Mark a task completed")
	log.Println("  POST /api/task/delete/:taskId        - Soft-delete a task")
	log.Println("  GET  /api/task/search?searchString=  - Search your tasks")
	log.Println("  GET  /api/task/page?pageNumber=      - Page through your tasks")
	log.Println("  POST /api/task/progress-all          - Status percentages")
	log.Println("  POST /api/task/progress-custom?days= - Windowed percentages")
	log.Println("  POST /api/task/priority-percentage   - Priority percentages")
	log.Println("  POST /api/task/completition-rate     - Completion rate")
	log.Println("  POST /api/task/time-start            - Record time on a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
