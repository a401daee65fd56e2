package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
)

// gensecret generates a random HS256 signing key for bearer tokens
//
// Usage:
//
//	go run ./cmd/gensecret [-bytes 32] [-save]
//
// The output line goes into .env as TOKEN_SECRET
func main() {
	size := flag.Int("bytes", 32, "number of random bytes in the key")
	save := flag.Bool("save", false, "also write the key to token-secret.txt")
	flag.Parse()

	if *size < 32 {
		log.Fatalf("Refusing to generate a key shorter than 32 bytes (got %d)", *size)
	}

	key := make([]byte, *size)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}

	line := "TOKEN_SECRET=base64:" + base64.StdEncoding.EncodeToString(key)

	fmt.Println("Add this to your .env file:")
	fmt.Println()
	fmt.Println(line)
	fmt.Println()
	fmt.Println("IMPORTANT:")
	fmt.Println("   - Keep this key SECRET")
	fmt.Println("   - Never commit it to version control")
	fmt.Println("   - Rotating it invalidates every issued token")

	if *save {
		filename := "token-secret.txt"
		if err := os.WriteFile(filename, []byte(line+"\n"), 0o600); err != nil {
			log.Fatalf("Failed to write key file: %v", err)
		}
		fmt.Printf("\nKey saved to %s (remember to add to .gitignore!)\n", filename)
	}
}
