package ogtext

import "image"

// ConvertOptions holds options for conversion and rendering.
type ConvertOptions struct {
	Normalize       bool
	Config          *RenderConfig
	BackgroundImage image.Image
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithNormalize sets whether markdown is normalized (NFC, "\n" line
// endings) before parsing.
func WithNormalize(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.Normalize = enable
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// WithBackgroundImage sets an image scaled to cover the canvas.
func WithBackgroundImage(img image.Image) Option {
	return func(opts *ConvertOptions) {
		opts.BackgroundImage = img
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Normalize: true,
		Config:    DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	return options
}
