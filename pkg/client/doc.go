// Package client is a Go client for the postsearch HTTP API.
//
//	c, _ := client.New("http://localhost:3000")
//	posts, err := c.Search(ctx, "What is true peace?")
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) {
//	    log.Printf("%d %s: %s", apiErr.StatusCode, apiErr.Message, apiErr.Details)
//	}
package client
