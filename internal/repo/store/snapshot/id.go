package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"github.com/keshon/wit/internal/errs"
)

// TreeDigest returns a sha2-256 multihash over the canonical listing of dir:
// one line per entry in walk order, directories by path, files by path, mode
// and content digest.
func (sc *SnapshotContext) TreeDigest(dir string) (multihash.Multihash, error) {
	var listing bytes.Buffer
	err := sc.Tree.Walk(dir, func(rel string, info os.FileInfo) error {
		if info.IsDir() {
			fmt.Fprintf(&listing, "d %s\n", rel)
			return nil
		}
		p := filepath.Join(dir, filepath.FromSlash(rel))
		data, err := sc.FS.ReadFile(p)
		if err != nil {
			return errs.FS("read", p, err)
		}
		mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
		if err != nil {
			return fmt.Errorf("multihash: %w", err)
		}
		fmt.Fprintf(&listing, "f %s %o %s\n", rel, info.Mode().Perm(), mh.HexString())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return multihash.Sum(listing.Bytes(), multihash.SHA2_256, -1)
}

// ComputeID derives a commit identifier from the staged tree digest and the
// commit's parents, date and message. The result is a CIDv1 (raw, sha2-256)
// in base32 multibase form.
func ComputeID(tree multihash.Multihash, parents []string, date time.Time, message string) (string, error) {
	var rec bytes.Buffer
	fmt.Fprintf(&rec, "tree %s\n", tree.HexString())
	for _, p := range parents {
		fmt.Fprintf(&rec, "parent %s\n", p)
	}
	fmt.Fprintf(&rec, "date %s\n", date.Format(time.ANSIC))
	fmt.Fprintf(&rec, "message %s\n", message)

	mh, err := multihash.Sum(rec.Bytes(), multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	c := gocid.NewCidV1(gocid.Raw, mh)
	id, err := multibase.Encode(multibase.Base32, c.Bytes())
	if err != nil {
		return "", fmt.Errorf("multibase: %w", err)
	}
	return id, nil
}

// ValidID reports whether s has the shape of an identifier made by ComputeID.
func ValidID(s string) bool {
	c, err := gocid.Decode(s)
	if err != nil {
		return false
	}
	return c.Version() == 1 && c.Type() == gocid.Raw && c.Prefix().MhType == multihash.SHA2_256
}
