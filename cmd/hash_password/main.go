// hash_password genera el hash bcrypt para AUTH_OWNER_PASSWORD_HASH / AUTH_CASHIER_PASSWORD_HASH.
//
// Uso: go run ./cmd/hash_password <password>
// Sin argumento lee la contraseña de la primera línea de stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/sakti-pos/internal/infrastructure/credential"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "leer password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "password vacío")
		os.Exit(1)
	}
	hash, err := credential.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
