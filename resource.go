package invitation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/invitation/capability"
	"gopkg.in/yaml.v3"
)

// LoadResource loads an invitation resource snapshot from a YAML or JSON (".json") document.
func LoadResource(ctx context.Context, URL string) (*capability.Resource, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load resource %v: %w", URL, err)
	}
	ret := &capability.Resource{}
	if strings.HasSuffix(strings.ToLower(URL), ".json") {
		err = json.Unmarshal(data, ret)
	} else {
		err = yaml.Unmarshal(data, ret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse resource %v: %w", URL, err)
	}
	return ret, nil
}
