package auth

// SetCodeGenerator reemplaza el generador de códigos de indicación en tests.
func (uc *AuthUseCase) SetCodeGenerator(fn func() string) { uc.newCode = fn }
