package codec

import (
	"context"

	"github.com/Masterminds/semver/v3"

	varskema "github.com/varskema/varskema"
)

// SemVer returns a Codec between semantic version strings and
// *semver.Version. Decode requires strict semver; Encode emits the canonical
// rendering (no "v" prefix, build metadata preserved).
func SemVer() varskema.Codec[string, *semver.Version] { return semverCodec{} }

type semverCodec struct{}

func (semverCodec) Decode(ctx context.Context, a string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(a)
	if err != nil {
		return nil, varskema.Issues{{Path: "/", Code: varskema.CodeInvalidFormat, Message: "invalid semantic version", Cause: err}}
	}
	return v, nil
}

func (semverCodec) Encode(ctx context.Context, b *semver.Version) (string, error) {
	if b == nil {
		return "", varskema.Issues{{Path: "/", Code: varskema.CodeEncodeError, Message: "nil version"}}
	}
	return b.String(), nil
}
