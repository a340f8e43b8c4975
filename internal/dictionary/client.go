package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// ErrNotFound is returned when the dictionary has no article for a word.
var ErrNotFound = errors.New("word not found in dictionary")

const lookupAttempts = 3

type Config struct {
	BaseURL        string
	CacheDirectory string
	Timeout        time.Duration
}

// Client looks up words against the Ordbøkene API. Responses go through a
// file cache, so a word is fetched at most once.
type Client struct {
	httpClient *resty.Client
	fileCache  *FileCache
}

func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://ord.uib.no"
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &Client{
		httpClient: client,
		fileCache:  NewFileCache(config.CacheDirectory),
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Lookup finds the first article for a word in the given dictionary. The
// assembled article is cached on disk keyed by dictionary and word.
func (c *Client) Lookup(ctx context.Context, word, dict string) (Entry, error) {
	if dict == "" {
		dict = DictBokmaal
	}

	contents, err := c.fileCache.cache(dict+"-"+word, func() ([]byte, error) {
		return c.fetchArticle(ctx, word, dict)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("fileCache.cache > %w", err)
	}

	entry, err := parseArticle(word, dict, contents)
	if err != nil {
		return Entry{}, fmt.Errorf("parseArticle(%s) > %w", word, err)
	}
	return entry, nil
}

func (c *Client) fetchArticle(ctx context.Context, word, dict string) ([]byte, error) {
	var contents []byte
	err := retry.Do(
		func() error {
			articleID, err := c.searchArticleID(ctx, word, dict)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return retry.Unrecoverable(err)
				}
				return err
			}

			body, err := c.get(ctx, fmt.Sprintf("/%s/article/%d.json", dict, articleID), nil)
			if err != nil {
				return err
			}
			contents = body
			return nil
		},
		retry.Attempts(lookupAttempts),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (c *Client) searchArticleID(ctx context.Context, word, dict string) (int, error) {
	body, err := c.get(ctx, "/api/articles", map[string]string{
		"w":     word,
		"dict":  dict,
		"scope": "e",
	})
	if err != nil {
		return 0, err
	}

	var search articlesResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return 0, fmt.Errorf("json.Unmarshal(articles) > %w", err)
	}
	ids := search.Articles[dict]
	if len(ids) == 0 {
		return 0, ErrNotFound
	}
	return ids[0], nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	request := c.httpClient.R().SetContext(ctx)
	if query != nil {
		request.SetQueryParams(query)
	}
	res, err := request.Get(path)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get(%s) > %w", path, err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Bytes()))
	}
	return res.Bytes(), nil
}
