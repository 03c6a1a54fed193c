package storage

import (
	"context"
	"errors"
	"io"

	"github.com/wioniqle-q/safe-object-avalonia/crypto/aead"
	"github.com/wioniqle-q/safe-object-avalonia/errs"
	"github.com/wioniqle-q/safe-object-avalonia/generator/randomness"
	"github.com/wioniqle-q/safe-object-avalonia/noncederive"
	"github.com/wioniqle-q/safe-object-avalonia/stream"
	"github.com/wioniqle-q/safe-object-avalonia/vault"
)

// FileNonceSize is the length of the random per-file nonce persisted in the
// header and used only to seed per-chunk nonce derivation.
const FileNonceSize = 12

// ContentKeySize is the length of the per-file AEAD content key.
const ContentKeySize = 32

const (
	opEncrypt = "storage.Service.Encrypt"
	opDecrypt = "storage.Service.Decrypt"
)

// Service orchestrates chunked AEAD encryption and decryption of file
// bodies, writing and reading the fixed-size header in front of the body.
type Service struct {
	vault *vault.Service
}

// New returns a Service that wraps and unwraps content keys through v.
func New(v *vault.Service) *Service {
	return &Service{vault: v}
}

// Encrypt reads req.SourcePath, writes req.DestinationPath as
// WCK || FN || chunks, and reports context cancellation as errs.Cancelled.
func (s *Service) Encrypt(ctx context.Context, req FileProcessingRequest, mkB64 string) error {
	if verr := req.Validate(); verr != nil {
		return verr
	}
	if cerr := checkCancelled(ctx, opEncrypt); cerr != nil {
		return cerr
	}

	ck, cerr := randomness.Bytes(ContentKeySize)
	if cerr != nil {
		return errs.New(opEncrypt, errs.IO, cerr)
	}
	defer wipe(ck)

	wck, werr := s.vault.EncryptKey(ck, mkB64)
	if werr != nil {
		return werr
	}
	defer wipe(wck)

	fn, ferr := randomness.Bytes(FileNonceSize)
	if ferr != nil {
		return errs.New(opEncrypt, errs.IO, ferr)
	}
	defer wipe(fn)

	src, serr := stream.OpenRead(req.SourcePath)
	if serr != nil {
		return serr
	}
	defer func() { _ = src.Close() }()

	dst, derr := stream.OpenWrite(req.DestinationPath)
	if derr != nil {
		return derr
	}
	defer func() { _ = dst.Close() }()

	if _, werr := dst.Write(wck); werr != nil {
		return werr
	}
	if _, werr := dst.Write(fn); werr != nil {
		return werr
	}
	if werr := dst.Flush(); werr != nil {
		return werr
	}

	salt, serr := noncederive.Precompute(fn)
	if serr != nil {
		return errs.New(opEncrypt, errs.IO, serr)
	}

	plainBuf := stream.Pool.Rent()
	defer stream.Pool.Return(plainBuf)

	for idx := uint64(0); ; idx++ {
		if cerr := checkCancelled(ctx, opEncrypt); cerr != nil {
			return cerr
		}

		n, rerr := readFull(src, *plainBuf)
		if rerr != nil {
			return rerr
		}
		if n == 0 {
			break
		}

		nonce, nerr := noncederive.Derive(salt, idx)
		if nerr != nil {
			return errs.New(opEncrypt, errs.IO, nerr)
		}

		tag, ciphertext, eerr := aead.EncryptChunk(ck, nonce, (*plainBuf)[:n], nil)
		if eerr != nil {
			return eerr
		}

		if _, werr := dst.Write(tag); werr != nil {
			wipeSlices(tag, ciphertext)
			return werr
		}
		if _, werr := dst.Write(ciphertext); werr != nil {
			wipeSlices(tag, ciphertext)
			return werr
		}
		if werr := dst.Flush(); werr != nil {
			wipeSlices(tag, ciphertext)
			return werr
		}
		wipeSlices(tag, ciphertext)

		if n < len(*plainBuf) {
			break
		}
	}

	return nil
}

// Decrypt reverses Encrypt: it reads the header, recovers the content key,
// and decrypts each chunk in order, failing closed on the first
// authentication error.
func (s *Service) Decrypt(ctx context.Context, req FileProcessingRequest, mkB64 string) error {
	if verr := req.Validate(); verr != nil {
		return verr
	}
	if cerr := checkCancelled(ctx, opDecrypt); cerr != nil {
		return cerr
	}

	src, serr := stream.OpenRead(req.SourcePath)
	if serr != nil {
		return serr
	}
	defer func() { _ = src.Close() }()

	wck := make([]byte, vault.FinalEncryptedKeySize)
	if n, rerr := readFull(src, wck); rerr != nil || n != len(wck) {
		if rerr != nil {
			return rerr
		}
		return errs.NewPhase(opDecrypt, errs.IO, "header", nil)
	}
	defer wipe(wck)

	fn := make([]byte, FileNonceSize)
	if n, rerr := readFull(src, fn); rerr != nil || n != len(fn) {
		if rerr != nil {
			return rerr
		}
		return errs.NewPhase(opDecrypt, errs.IO, "header", nil)
	}
	defer wipe(fn)

	ck, werr := s.vault.DecryptKey(wck, mkB64)
	if werr != nil {
		return werr
	}
	defer wipe(ck)

	dst, derr := stream.OpenWrite(req.DestinationPath)
	if derr != nil {
		return derr
	}
	defer func() { _ = dst.Close() }()

	salt, serr := noncederive.Precompute(fn)
	if serr != nil {
		return errs.New(opDecrypt, errs.IO, serr)
	}

	tagBuf := make([]byte, aead.TagSize)
	cipherBuf := stream.Pool.Rent()
	defer stream.Pool.Return(cipherBuf)

	for idx := uint64(0); ; idx++ {
		if cerr := checkCancelled(ctx, opDecrypt); cerr != nil {
			return cerr
		}

		tagN, rerr := readFull(src, tagBuf)
		if rerr != nil {
			return rerr
		}
		if tagN < len(tagBuf) {
			// Short read of the tag marks a clean end of stream: there is no
			// trailing partial chunk to authenticate.
			break
		}

		n, rerr := readFull(src, *cipherBuf)
		if rerr != nil {
			wipe(tagBuf)
			return rerr
		}
		if n == 0 {
			break
		}

		nonce, nerr := noncederive.Derive(salt, idx)
		if nerr != nil {
			return errs.New(opDecrypt, errs.IO, nerr)
		}

		plaintext, derr := aead.DecryptChunk(ck, nonce, tagBuf, (*cipherBuf)[:n], nil)
		if derr != nil {
			wipe(tagBuf)
			return derr
		}

		_, werr := dst.Write(plaintext)
		wipe(plaintext)
		if werr != nil {
			return werr
		}
		if werr := dst.Flush(); werr != nil {
			return werr
		}

		if n < len(*cipherBuf) {
			break
		}
	}

	return nil
}

// readFull reads until buf is filled or the stream is exhausted. A clean
// end-of-stream, whether before any byte was read or partway through a
// chunk, is reported as (n, nil): the caller distinguishes a full chunk from
// a short final chunk by comparing n against len(buf).
func readFull(r stream.DirectStream, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

func checkCancelled(ctx context.Context, op string) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errs.New(op, errs.Cancelled, ctx.Err())
	default:
		return nil
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeSlices(slices ...[]byte) {
	for _, s := range slices {
		wipe(s)
	}
}
