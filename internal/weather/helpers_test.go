package weather

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

// pointOpt mutates a test point.
type pointOpt func(*TimeSeriesPoint)

func withTemp(t float64) pointOpt {
	return func(p *TimeSeriesPoint) { instantDetails(p).AirTemperature = f64(t) }
}

func withWind(speed, dir float64) pointOpt {
	return func(p *TimeSeriesPoint) {
		d := instantDetails(p)
		d.WindSpeed = f64(speed)
		d.WindFromDirection = f64(dir)
	}
}

func withDetails() pointOpt {
	return func(p *TimeSeriesPoint) { instantDetails(p) }
}

func with6h(symbol string, precip *float64) pointOpt {
	return func(p *TimeSeriesPoint) {
		v := &PeriodValues{Details: &PeriodDetails{PrecipitationAmount: precip}}
		if symbol != "" {
			v.Summary = &PeriodSummary{SymbolCode: symbol}
		}
		p.Data.Next6Hours = v
	}
}

func with1h(symbol string, precip *float64, category string) pointOpt {
	return func(p *TimeSeriesPoint) {
		v := &PeriodValues{Details: &PeriodDetails{PrecipitationAmount: precip}}
		if symbol != "" {
			v.Summary = &PeriodSummary{SymbolCode: symbol}
		}
		if category != "" {
			v.Details.PrecipitationCategory = str(category)
		}
		p.Data.Next1Hours = v
	}
}

func instantDetails(p *TimeSeriesPoint) *InstantDetails {
	if p.Data.Instant == nil {
		p.Data.Instant = &Instant{}
	}
	if p.Data.Instant.Details == nil {
		p.Data.Instant.Details = &InstantDetails{}
	}
	return p.Data.Instant.Details
}

func point(ts string, opts ...pointOpt) TimeSeriesPoint {
	p := TimeSeriesPoint{Time: ts}
	for _, o := range opts {
		o(&p)
	}
	return p
}
