package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.LevelFromConfig(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func initDB() error {
	return database.InitDB(config.GetDatabaseConfig())
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()

	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer logger.CloseLogger()
	defer database.CloseDB()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP, restarting server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down:", sig)
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func createAdmin(name, email, password string) {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	user, err := userService.CreateAdmin(name, email, password)
	if err != nil {
		fmt.Println("create admin failed:", err)
		return
	}
	fmt.Printf("admin %s created with id %s\n", user.Email, user.ID)
}

func setRole(email string, role model.Role) {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	if err := userService.SetRole(email, role); err != nil {
		fmt.Println("set role failed:", err)
		return
	}
	fmt.Printf("%s is now %s\n", email, role)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println("load .env:", err)
	}

	var rootCmd = &cobra.Command{
		Use:   "careerconnect",
		Short: "Job board backend and command line client",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			createAdmin(name, email, password)
		},
	}
	createCmd.Flags().String("name", "Administrator", "display name")
	createCmd.Flags().String("email", "", "login email")
	createCmd.Flags().String("password", "", "login password")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	var promoteCmd = &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to an existing user",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			demote, _ := cmd.Flags().GetBool("demote")
			role := model.RoleAdmin
			if demote {
				role = model.RoleUser
			}
			setRole(email, role)
		},
	}
	promoteCmd.Flags().String("email", "", "email of the user")
	promoteCmd.Flags().Bool("demote", false, "revoke the admin role instead")
	_ = promoteCmd.MarkFlagRequired("email")

	adminCmd.AddCommand(createCmd, promoteCmd)

	rootCmd.AddCommand(runCmd, adminCmd, newClientCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
