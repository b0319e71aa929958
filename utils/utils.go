package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Sha512String hashes and encodes in hex the result
func Sha512String(s string) string {
	hash := sha512.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

func RandSalt(saltSize int) string {
	b := make([]byte, saltSize)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

// NormalizePhone strips whitespace, parentheses and hyphens so that
// "(11) 99876-5432" and "11998765432" compare and persist the same
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "\t", "", "(", "", ")", "", "-", "")
	return replacer.Replace(strings.TrimSpace(phone))
}
