// internal/domain/editor/photo.go
package editor

// PhotoKind tells which variant a Photo holds.
type PhotoKind uint8

const (
	PhotoAbsent PhotoKind = iota
	PhotoStored
	PhotoPending
)

func (k PhotoKind) String() string {
	switch k {
	case PhotoStored:
		return "stored"
	case PhotoPending:
		return "pending"
	default:
		return "absent"
	}
}

// Asset is a locally selected image waiting to be uploaded.
//
// The editor never copies or re-encodes Data; the same buffer the caller
// handed in is what ends up in a Submission.
type Asset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Photo is one of: absent, a reference to an image that was stored by an
// earlier save, or a pending Asset. The zero value is Absent.
type Photo struct {
	kind  PhotoKind
	ref   string
	asset *Asset
}

// Absent returns an empty photo.
func Absent() Photo { return Photo{} }

// Stored wraps an opaque stored reference. An empty ref is treated as Absent.
func Stored(ref string) Photo {
	if ref == "" {
		return Photo{}
	}
	return Photo{kind: PhotoStored, ref: ref}
}

// Pending wraps a newly selected asset. A nil asset is treated as Absent.
func Pending(a *Asset) Photo {
	if a == nil {
		return Photo{}
	}
	return Photo{kind: PhotoPending, asset: a}
}

func (p Photo) Kind() PhotoKind { return p.kind }

func (p Photo) IsAbsent() bool { return p.kind == PhotoAbsent }

// StoredRef returns the stored reference when p is Stored.
func (p Photo) StoredRef() (string, bool) {
	if p.kind != PhotoStored {
		return "", false
	}
	return p.ref, true
}

// PendingAsset returns the asset when p is Pending.
func (p Photo) PendingAsset() (*Asset, bool) {
	if p.kind != PhotoPending {
		return nil, false
	}
	return p.asset, true
}

// Equal compares variants; pending photos are equal only when they point at
// the same Asset.
func (p Photo) Equal(o Photo) bool {
	return p.kind == o.kind && p.ref == o.ref && p.asset == o.asset
}
