package agent

import (
	"github.com/etnz/intrinsic"
	"google.golang.org/genai"
)

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// NewFacilitator creates the expert the user talks to.
func NewFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user wants to know what a company is worth compared to its price. Devise a plan of
			questions to ask to each expert and come up with the best response to the user's request.
			Always say which parameters a valuation used, a valuation is only as good as its assumptions.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search.
func NewResearcher(model string) *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher, very well aware of companies and markets.
		Ask the Researcher whenever you need recent news or an opinion on a company's growth prospects.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert in equity research, you can search and find about anything related to
			companies, their markets and their competitors. You leverage Google Search to ground your
			assertions in a solid truth. When asked about growth, give a figure and the reasons for it.
			`),
		},
	}
}

// NewAnalyst creates an expert that fetches figures and computes valuations.
func NewAnalyst(model string, p intrinsic.Provider, defaults intrinsic.Parameters) *Expert {
	lib := []Function{FundamentalsTool(p), ValuateTool(p, defaults)}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It fetches the price, shares outstanding and free cash flow of a company
		and computes its intrinsic value per share with a discounted cash flow model, with any parameters.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are a financial analyst. Use the available tools to get the figures of a company and to value it.
			Report the intrinsic value per share, the current price and the upside, and the parameters used.
			When a figure cannot be fetched, say so and offer to value manually entered figures.
			`),
		},
		Library: NewLibrary(lib),
	}
}
