package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/nucled/internal/api/models"
	"github.com/smazurov/nucled/internal/led"
)

// registerLightRoutes registers the LED control endpoints.
func (s *Server) registerLightRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "set-light",
		Method:      http.MethodPost,
		Path:        "/api/lights",
		Summary:     "Set Light",
		Description: "Route an indicator source to a LED and set its brightness and color. Write failures are reported but do not stop the remaining commands.",
		Tags:        []string{"lights"},
		Errors:      []int{400, 401, 503},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.LightRequest) (*models.LightResponse, error) {
		if s.emitter == nil {
			return nil, huma.Error503ServiceUnavailable("LED emitter not configured")
		}

		in := input.Body
		report, err := s.emitter.SetColorAndSource(in.LED, in.Source, in.Brightness, in.Color)
		if err != nil {
			if led.IsCode(err, led.ErrUnknownSymbol) || led.IsCode(err, led.ErrMalformedColor) {
				return nil, huma.Error400BadRequest("Invalid light setting", err)
			}
			return nil, huma.Error500InternalServerError("Failed to set light", err)
		}

		body := models.LightResultData{
			Commands: make([]string, 0, len(report.Commands)),
		}
		for _, cmd := range report.Commands {
			body.Commands = append(body.Commands, cmd.String())
		}
		for _, f := range report.Failures {
			body.WriteErrors = append(body.WriteErrors, f.Error())
		}
		return &models.LightResponse{Body: body}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "apply-lights",
		Method:      http.MethodPost,
		Path:        "/api/lights/apply",
		Summary:     "Apply Lights File",
		Description: "Re-run the lights configuration file as one batch. A failed batch is reported in the response body.",
		Tags:        []string{"lights"},
		Errors:      []int{401, 503},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.ApplyResponse, error) {
		if s.driver == nil {
			return nil, huma.Error503ServiceUnavailable("Lights file driver not configured")
		}

		outcome := s.driver.Run()
		body := models.ApplyData{
			RunID:       outcome.RunID,
			LightsFile:  s.driver.LightsFile(),
			State:       string(outcome.State),
			Applied:     outcome.Applied,
			WriteErrors: outcome.WriteErrors,
			DurationMs:  outcome.Duration.Milliseconds(),
		}
		if outcome.Err != nil {
			body.Error = outcome.Err.Error()
		}
		return &models.ApplyResponse{Body: body}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-light-symbols",
		Method:      http.MethodGet,
		Path:        "/api/lights/symbols",
		Summary:     "Light Symbols",
		Description: "List known LEDs and indicator sources with their codes and color fields",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.SymbolsResponse, error) {
		return &models.SymbolsResponse{Body: symbolsData()}, nil
	})
}

func symbolsData() models.SymbolsData {
	var data models.SymbolsData
	for _, l := range led.LEDs() {
		data.LEDs = append(data.LEDs, models.LEDSymbol{Name: l.Name, Code: l.Code})
	}
	for _, ind := range led.Indicators() {
		sym := models.IndicatorSymbol{Name: ind.Name, Code: ind.Code}
		if layout, ok := ind.Layout(); ok {
			for _, f := range layout.Fields() {
				sym.Fields = append(sym.Fields, string(f))
			}
		}
		data.Indicators = append(data.Indicators, sym)
	}
	return data
}
