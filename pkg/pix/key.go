// Package pix valida y normaliza chaves PIX (CPF, CNPJ, e-mail, celular y aleatoria).
package pix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Tipos de chave aceptados.
const (
	KeyTypeCPF   = "cpf"
	KeyTypeCNPJ  = "cnpj"
	KeyTypeEmail = "email"
	KeyTypePhone = "phone"
	KeyTypeEVP   = "evp" // chave aleatória
)

// ErrInvalidKey la chave no corresponde a su tipo.
var ErrInvalidKey = errors.New("pix: chave inválida")

var (
	phonePattern = regexp.MustCompile(`^\+55\d{10,11}$`)
	emailCheck   = validator.New()
)

// pesos módulo 11 de la Receita Federal para CNPJ (primer y segundo dígito).
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize valida key según keyType y devuelve la forma canónica a persistir:
// solo dígitos para CPF/CNPJ, minúsculas para e-mail y EVP, E.164 para celular.
func Normalize(keyType, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: vacía", ErrInvalidKey)
	}
	switch strings.ToLower(strings.TrimSpace(keyType)) {
	case KeyTypeCPF:
		d := extractDigits(key)
		if !validCPF(d) {
			return "", fmt.Errorf("%w: CPF con dígito verificador incorrecto", ErrInvalidKey)
		}
		return string(d), nil
	case KeyTypeCNPJ:
		d := extractDigits(key)
		if !validCNPJ(d) {
			return "", fmt.Errorf("%w: CNPJ con dígito verificador incorrecto", ErrInvalidKey)
		}
		return string(d), nil
	case KeyTypeEmail:
		k := strings.ToLower(key)
		if len(k) > 77 || emailCheck.Var(k, "required,email") != nil {
			return "", fmt.Errorf("%w: e-mail", ErrInvalidKey)
		}
		return k, nil
	case KeyTypePhone:
		k := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(key)
		if !strings.HasPrefix(k, "+") {
			k = "+55" + k
		}
		if !phonePattern.MatchString(k) {
			return "", fmt.Errorf("%w: celular debe tener formato +55DDNNNNNNNNN", ErrInvalidKey)
		}
		return k, nil
	case KeyTypeEVP:
		id, err := uuid.Parse(key)
		if err != nil {
			return "", fmt.Errorf("%w: chave aleatória", ErrInvalidKey)
		}
		return id.String(), nil
	default:
		return "", fmt.Errorf("%w: tipo %q no soportado", ErrInvalidKey, keyType)
	}
}

// Mask oculta la chave para logs y respuestas (deja los últimos 4 caracteres).
func Mask(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

func validCPF(d []byte) bool {
	if len(d) != 11 || allSame(d) {
		return false
	}
	for n := 9; n <= 10; n++ {
		var sum int
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		r := (sum * 10) % 11
		if r == 10 {
			r = 0
		}
		if byte('0'+r) != d[n] {
			return false
		}
	}
	return true
}

func validCNPJ(d []byte) bool {
	if len(d) != 14 || allSame(d) {
		return false
	}
	return d[12] == cnpjDigit(d[:12], cnpjWeights1[:]) && d[13] == cnpjDigit(d[:13], cnpjWeights2[:])
}

func cnpjDigit(base []byte, weights []int) byte {
	var sum int
	for i, c := range base {
		sum += int(c-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allSame(d []byte) bool {
	for _, c := range d[1:] {
		if c != d[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
