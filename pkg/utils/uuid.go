package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Tamanho dos IDs de sessão
const sessionIDSize = 21

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, sessionIDSize)
}
