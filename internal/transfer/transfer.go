// Package transfer turns an export payload into the bytes written to an
// export file and back. Files may be zstd-compressed and/or encrypted to a
// passphrase with age; both layers are detected on read.
package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrPassphraseRequired is returned when an encrypted file is read
	// without a way to obtain the passphrase.
	ErrPassphraseRequired = errors.New("file is encrypted, a passphrase is required")
	// ErrWrongPassphrase is returned when the passphrase does not decrypt the file.
	ErrWrongPassphrase = errors.New("incorrect passphrase")
)

// scryptWorkFactor overrides age's default cost when non-zero.
var scryptWorkFactor = 0

var (
	ageHeader = []byte("age-encryption.org/v1")
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// PassphraseFunc supplies a passphrase on demand, e.g. from a terminal prompt.
type PassphraseFunc func() (string, error)

// Options selects the layers applied by Encode.
type Options struct {
	Compress   bool
	Passphrase string
}

// IsEncrypted reports whether data is an age file.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, ageHeader)
}

// IsCompressed reports whether data is a zstd frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Encode compresses and then encrypts payload as requested.
func Encode(payload []byte, opts Options) ([]byte, error) {
	out := payload
	if opts.Compress {
		compressed, err := compress(out)
		if err != nil {
			return nil, err
		}
		out = compressed
	}
	if opts.Passphrase != "" {
		encrypted, err := encrypt(out, opts.Passphrase)
		if err != nil {
			return nil, err
		}
		out = encrypted
	}
	return out, nil
}

// Decode undoes Encode. passphrase is only called for encrypted input and
// may be nil when no prompt is possible.
func Decode(data []byte, passphrase PassphraseFunc) ([]byte, error) {
	out := data
	if IsEncrypted(out) {
		if passphrase == nil {
			return nil, ErrPassphraseRequired
		}
		pass, err := passphrase()
		if err != nil {
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		if out, err = decrypt(out, pass); err != nil {
			return nil, err
		}
	}
	if IsCompressed(out) {
		decompressed, err := decompress(out)
		if err != nil {
			return nil, err
		}
		out = decompressed
	}
	return out, nil
}

// WriteFile encodes payload and writes it to path via a temp file and
// rename. Export files are private to the user.
func WriteFile(path string, payload []byte, opts Options) error {
	data, err := Encode(payload, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ReadFile reads and decodes the file at path.
func ReadFile(path string, passphrase PassphraseFunc) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return Decode(data, passphrase)
}

func compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing data: %w", err)
	}
	return out, nil
}

func encrypt(data []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	if scryptWorkFactor > 0 {
		recipient.SetWorkFactor(scryptWorkFactor)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("encrypting data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	return buf.Bytes(), nil
}

func decrypt(data []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		var noMatch *age.NoIdentityMatchError
		if errors.As(err, &noMatch) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("decrypting data: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decrypting data: %w", err)
	}
	return out, nil
}
