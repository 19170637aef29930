package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	termAdapter "shopkeeper/internal/adapters/term"
)

func main() {
	_ = godotenv.Load()

	url := flag.String("url", "http://localhost:8080", "server base URL")
	username := flag.String("username", "", "username (prompted when empty)")
	password := flag.String("password", "", "password (prompted when empty)")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)

	user := *username
	if user == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("read username: %v", err)
		}
		fmt.Sscanf(line, "%s", &user)
	}

	pass := *password
	if pass == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		pass = string(raw)
	}

	if err := termAdapter.Run(context.Background(), *url, user, pass, reader, os.Stdout); err != nil {
		log.Fatalf("admin: %v", err)
	}
}
