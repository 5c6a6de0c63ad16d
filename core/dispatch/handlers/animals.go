package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"GoBotExt/core"
	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"
)

const AnimalsSection = "Animals"

// Image APIs. Tests point these at a local server.
var (
	catAPI    = "https://api.thecatapi.com/v1/images/search"
	dogAPI    = "https://dog.ceo/api/breed/%s/images/random"
	animalAPI = "https://some-random-api.com/animal/%s"
)

var animalKinds = []any{"cat", "dog", "corgi", "bird", "panda", "fox", "kangaroo", "raccoon", "redpanda"}

func Animals(d *dispatch.Dispatcher) error {
	section := dispatch.NewSection(dispatch.SectionOptions{
		Name:        AnimalsSection,
		Description: "Random animal pictures",
	}).Define(dispatch.CommandOptions{
		Name:        "random",
		Description: "Show image of a random animal",
		Arguments:   []dispatch.Argument{dispatch.Arg("animal", convert.Oneof(convert.String(), animalKinds...))},
	}, randomAnimal)
	return d.AddSection(section)
}

func randomAnimal(ctx context.Context, c *dispatch.Context, args ...any) error {
	animal := args[0].(string)
	var (
		image, fact string
		err         error
	)
	switch animal {
	case "cat":
		image, err = fetchCat(ctx)
	case "dog", "corgi":
		breed := "hound"
		if animal == "corgi" {
			breed = "corgi"
		}
		image, err = fetchDog(ctx, breed)
	case "redpanda":
		image, _, err = fetchAnimal(ctx, "red_panda")
	default:
		image, fact, err = fetchAnimal(ctx, animal)
	}
	if err != nil {
		core.LogErrorF("Failed to get a random %s: %s", animal, err)
		return c.ReplyToChannel(ctx, "Unfortunately, I failed to find a random %s for you today. :-(", animal)
	}
	if fact != "" {
		return c.ReplyToChannel(ctx, "%s\n\n%s", fact, image)
	}
	return c.Send(ctx, image)
}

func getJSON(ctx context.Context, rawURL string, into any, params ...core.URLParam) error {
	u, err := core.MakeURL(rawURL, params...)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s", u.Host, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(into)
}

func fetchCat(ctx context.Context) (string, error) {
	var model []struct {
		Url string `json:"url"`
	}
	if err := getJSON(ctx, catAPI, &model, core.URLParam{Key: "limit", Val: "1"}); err != nil {
		return "", err
	}
	if len(model) == 0 || model[0].Url == "" {
		return "", errors.New("no cat in response")
	}
	return model[0].Url, nil
}

func fetchDog(ctx context.Context, breed string) (string, error) {
	var model struct {
		Url    string `json:"message"`
		Status string `json:"status"`
	}
	if err := getJSON(ctx, fmt.Sprintf(dogAPI, breed), &model); err != nil {
		return "", err
	}
	if model.Status != "success" || model.Url == "" {
		return "", fmt.Errorf("unexpected status %q", model.Status)
	}
	return model.Url, nil
}

func fetchAnimal(ctx context.Context, kind string) (image, fact string, err error) {
	var model struct {
		Url  string `json:"image"`
		Fact string `json:"fact"`
	}
	if err = getJSON(ctx, fmt.Sprintf(animalAPI, kind), &model); err != nil {
		return "", "", err
	}
	if model.Url == "" {
		return "", "", fmt.Errorf("no %s in response", kind)
	}
	return model.Url, model.Fact, nil
}
