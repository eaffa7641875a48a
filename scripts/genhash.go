//go:build ignore

// genhash prints bcrypt hashes for the passwords given as arguments, for
// seeding users by hand: go run scripts/genhash.go <password>...
package main

import (
	"fmt"
	"os"

	"go-applicant-tracker/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run scripts/genhash.go <password>...")
		os.Exit(2)
	}

	for _, pass := range os.Args[1:] {
		hash, err := auth.HashPassword(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
