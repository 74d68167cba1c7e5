package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
)

var ErrNoMeal = errors.New("meal service returned no meal")

// MealIngredient is one strIngredientN/strMeasureN pair of a TheMealDB meal
type MealIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Meal is the subset of a TheMealDB meal the client shows
type Meal struct {
	ID           string           `json:"idMeal"`
	Name         string           `json:"strMeal"`
	Category     string           `json:"strCategory"`
	Area         string           `json:"strArea"`
	Instructions string           `json:"strInstructions"`
	Thumbnail    string           `json:"strMealThumb"`
	Tags         string           `json:"strTags,omitempty"`
	YouTube      string           `json:"strYoutube,omitempty"`
	Ingredients  []MealIngredient `json:"ingredients"`
}

// SurpriseService picks a random meal from TheMealDB
type SurpriseService struct {
	baseURL  string
	client   *http.Client
	maxTries uint
}

func NewSurpriseService(baseURL string) *SurpriseService {
	return &SurpriseService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		maxTries: 3,
	}
}

func (s *SurpriseService) RandomMeal(ctx context.Context) (*Meal, error) {
	fetch := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/random.php", nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("meal service returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("meal service returned status %d", resp.StatusCode))
		}
		return body, nil
	}

	body, err := backoff.Retry(ctx, fetch,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(s.maxTries),
	)
	if err != nil {
		return nil, err
	}
	return parseMeal(body)
}

// parseMeal reads meals[0] and folds the numbered ingredient columns into a list
func parseMeal(body []byte) (*Meal, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse meal response")
	}
	m := gjson.GetBytes(body, "meals.0")
	if !m.IsObject() {
		return nil, ErrNoMeal
	}

	meal := &Meal{
		ID:           m.Get("idMeal").String(),
		Name:         m.Get("strMeal").String(),
		Category:     m.Get("strCategory").String(),
		Area:         m.Get("strArea").String(),
		Instructions: m.Get("strInstructions").String(),
		Thumbnail:    m.Get("strMealThumb").String(),
		Tags:         m.Get("strTags").String(),
		YouTube:      m.Get("strYoutube").String(),
		Ingredients:  []MealIngredient{},
	}
	for i := 1; i <= 20; i++ {
		n := strconv.Itoa(i)
		name := strings.TrimSpace(m.Get("strIngredient" + n).String())
		if name == "" {
			continue
		}
		meal.Ingredients = append(meal.Ingredients, MealIngredient{
			Name:    name,
			Measure: strings.TrimSpace(m.Get("strMeasure" + n).String()),
		})
	}
	return meal, nil
}
