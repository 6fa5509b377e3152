package passbolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/keepick/keepick/match"
	"github.com/passbolt/go-passbolt/api"
	"github.com/passbolt/go-passbolt/helper"
	"github.com/spf13/viper"
)

// defaultSequence is used for every server entry: Passbolt resources
// carry no auto-type configuration of their own.
const defaultSequence = "{USERNAME}{TAB}{PASSWORD}{ENTER}"

// Resource is one decrypted server resource.
type Resource struct {
	Name        string
	Username    string
	URI         string
	Password    string
	Description string
}

// Database exposes a Passbolt server as a searchable credential store.
// Resources are fetched and decrypted once, on first search, then
// filtered client side (the server API has no text search).
type Database struct {
	name string
	load func() ([]Resource, error)

	once      sync.Once
	resources []Resource
	loadErr   error
}

// NewDatabase wraps a logged-in client.
func NewDatabase(client *Client) *Database {
	return &Database{
		name: "passbolt",
		load: func() ([]Resource, error) {
			return fetchResources(client.ctx, client.api)
		},
	}
}

// Name returns the database label.
func (d *Database) Name() string {
	return d.name
}

// Search returns entries whose name, username or URI contain every
// whitespace-separated query term, case-insensitively.
func (d *Database) Search(query string) ([]match.Entry, error) {
	d.once.Do(func() {
		d.resources, d.loadErr = d.load()
	})
	if d.loadErr != nil {
		return nil, fmt.Errorf("loading resources: %w", d.loadErr)
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	var found []match.Entry
	for i := range d.resources {
		if matchesTerms(&d.resources[i], terms) {
			found = append(found, &Entry{resource: &d.resources[i]})
		}
	}
	return found, nil
}

func matchesTerms(r *Resource, terms []string) bool {
	text := strings.ToLower(r.Name + "\n" + r.Username + "\n" + r.URI)
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// Entry adapts a decrypted resource to match.Entry.
type Entry struct {
	resource *Resource
}

func (e *Entry) Title() string             { return e.resource.Name }
func (e *Entry) Username() string          { return e.resource.Username }
func (e *Entry) Password() string          { return e.resource.Password }
func (e *Entry) TOTP() string              { return "" }
func (e *Entry) HasTOTP() bool             { return false }
func (e *Entry) EffectiveSequence() string { return defaultSequence }
func (e *Entry) Associations() []string    { return nil }

// fetchResources downloads all resources with their secrets and
// decrypts them on a worker pool sized by the workers setting.
func fetchResources(ctx context.Context, client *api.Client) ([]Resource, error) {
	resources, err := client.GetResources(ctx, &api.GetResourcesOptions{
		ContainSecret: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	var valid []api.Resource
	for i := range resources {
		if len(resources[i].Secrets) == 0 {
			continue
		}
		valid = append(valid, resources[i])
	}
	if len(valid) == 0 {
		return nil, nil
	}

	numWorkers := int(viper.GetUint("workers"))
	if numWorkers <= 0 {
		numWorkers = 4
	}
	if len(valid) < numWorkers {
		numWorkers = len(valid)
	}

	type result struct {
		index    int
		resource Resource
		err      error
	}

	jobs := make(chan int, len(valid))
	results := make(chan result, len(valid))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res := valid[idx]

				rType, err := client.GetResourceTypeCached(ctx, res.ResourceTypeID)
				if err != nil {
					results <- result{index: idx, err: fmt.Errorf("get resource type: %w", err)}
					continue
				}

				_, name, username, uri, pass, desc, err := helper.GetResourceFromDataWithOptions(
					client,
					res,
					res.Secrets[0],
					*rType,
					true,
				)
				results <- result{
					index: idx,
					resource: Resource{
						Name:        name,
						Username:    username,
						URI:         uri,
						Password:    pass,
						Description: desc,
					},
					err: err,
				}
			}
		}()
	}

	for i := range valid {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]result, len(valid))
	for r := range results {
		ordered[r.index] = r
	}

	decrypted := make([]Resource, 0, len(valid))
	skipped := 0
	for _, r := range ordered {
		if r.err != nil {
			if errors.Is(r.err, helper.ErrUnsupportedResourceType) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("decrypting resource: %w", r.err)
		}
		decrypted = append(decrypted, r.resource)
	}

	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d resource(s) skipped due to unsupported types\n", skipped)
	}

	return decrypted, nil
}
