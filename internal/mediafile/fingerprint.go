package mediafile

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avast/retry-go"
)

// fingerprintSampleSize is how much is hashed from each end of the file.
const fingerprintSampleSize = 8 * 1024

// Fingerprint returns a hex digest of the first and last 8KiB of the file,
// which identifies the content without reading multi-gigabyte videos in
// full. Files of 8KiB or less are hashed whole. Transient read failures are
// retried; a missing or unreadable file fails immediately.
func Fingerprint(path string) (string, error) {
	var digest string
	err := retry.Do(
		func() error {
			d, err := fingerprintOnce(path)
			if err != nil {
				if os.IsNotExist(err) || os.IsPermission(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			digest = d
			return nil
		},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("mediafile.fingerprintOnce(%s) > %w", path, err)
	}
	return digest, nil
}

func fingerprintOnce(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	hash := md5.New()
	if info.Size() <= fingerprintSampleSize {
		if _, err := io.Copy(hash, file); err != nil {
			return "", err
		}
		return hex.EncodeToString(hash.Sum(nil)), nil
	}

	head := make([]byte, fingerprintSampleSize)
	if _, err := io.ReadFull(file, head); err != nil {
		return "", err
	}
	hash.Write(head)

	if _, err := file.Seek(-fingerprintSampleSize, io.SeekEnd); err != nil {
		return "", err
	}
	tail := make([]byte, fingerprintSampleSize)
	if _, err := io.ReadFull(file, tail); err != nil {
		return "", err
	}
	hash.Write(tail)

	return hex.EncodeToString(hash.Sum(nil)), nil
}
