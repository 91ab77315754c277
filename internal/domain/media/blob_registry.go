// Package media agrupa reglas de dominio para los archivos de galería (imágenes y video).
package media

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrRegistryClosed se devuelve al operar sobre un registro ya liberado con Close.
var ErrRegistryClosed = errors.New("media: registro de blob URLs cerrado")

// BlobEntry metadatos de un blob URL registrado.
type BlobEntry struct {
	URL          string
	ContentHash  string
	Fingerprint  string
	RegisteredAt time.Time
}

// Validation resultado de ValidateUniqueness.
type Validation struct {
	IsValid bool
	Reason  string
}

// BlobRegistry registra blob URLs efímeros con el hash de su contenido para detectar
// re-subidas duplicadas. No es un singleton: el dueño lo crea con NewBlobRegistry y lo
// libera con Close. Seguro para uso concurrente.
type BlobRegistry struct {
	mu     sync.RWMutex
	byURL  map[string]BlobEntry
	byHash map[string]string // contentHash -> url
	closed bool
	now    func() time.Time
}

// NewBlobRegistry inicializa un registro vacío.
func NewBlobRegistry() *BlobRegistry {
	return &BlobRegistry{
		byURL:  make(map[string]BlobEntry),
		byHash: make(map[string]string),
		now:    time.Now,
	}
}

// Register asocia url con contentHash y fingerprint. Re-registrar la misma url reemplaza la entrada.
func (r *BlobRegistry) Register(url, contentHash, fingerprint string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("media: url requerida")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRegistryClosed
	}
	// El hash anterior solo se libera si esta url sigue siendo su dueña.
	if prev, ok := r.byURL[url]; ok && prev.ContentHash != "" && r.byHash[prev.ContentHash] == url {
		delete(r.byHash, prev.ContentHash)
	}
	r.byURL[url] = BlobEntry{URL: url, ContentHash: contentHash, Fingerprint: fingerprint, RegisteredAt: r.now()}
	if contentHash != "" {
		r.byHash[contentHash] = url
	}
	return nil
}

// ValidateUniqueness indica si url+contentHash pueden registrarse sin colisionar:
// una url ya usada con otro contenido o un contenido ya registrado bajo otra url son inválidos.
func (r *BlobRegistry) ValidateUniqueness(url, contentHash string) Validation {
	url = strings.TrimSpace(url)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return Validation{IsValid: false, Reason: ErrRegistryClosed.Error()}
	}
	if entry, ok := r.byURL[url]; ok && entry.ContentHash != contentHash {
		return Validation{IsValid: false, Reason: "url reutilizada para un contenido distinto"}
	}
	if contentHash != "" {
		if other, ok := r.byHash[contentHash]; ok && other != url {
			return Validation{IsValid: false, Reason: "contenido duplicado, ya registrado como " + other}
		}
	}
	return Validation{IsValid: true}
}

// Lookup devuelve la entrada registrada para url.
func (r *BlobRegistry) Lookup(url string) (BlobEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byURL[strings.TrimSpace(url)]
	return e, ok
}

// Revoke elimina url del registro. No falla si no existe.
func (r *BlobRegistry) Revoke(url string) {
	url = strings.TrimSpace(url)
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byURL[url]
	if !ok {
		return
	}
	delete(r.byURL, url)
	if entry.ContentHash != "" && r.byHash[entry.ContentHash] == url {
		delete(r.byHash, entry.ContentHash)
	}
}

// Clear vacía el registro sin cerrarlo.
func (r *BlobRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byURL = make(map[string]BlobEntry)
	r.byHash = make(map[string]string)
}

// Len cantidad de urls registradas.
func (r *BlobRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byURL)
}

// Close libera el registro. Llamadas posteriores a Register devuelven ErrRegistryClosed.
func (r *BlobRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byURL = nil
	r.byHash = nil
	r.closed = true
	return nil
}
