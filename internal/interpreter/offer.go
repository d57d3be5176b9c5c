package interpreter

import (
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/models"
)

// BuildChipOffer turns an agent reply into a chip offer.
//
// It returns nil when the reply mentions no times, or when no date can be found
// in the reply or the prior offer. context is the recent conversation text used
// only for party-size inference. The prior offer's date and party size take
// precedence since an availability query seeds them before the reply arrives.
func BuildChipOffer(reply, context string, prior *models.ChipOffer) *models.ChipOffer {
	times := ExtractTimes(reply)
	if len(times) == 0 {
		return nil
	}

	date, ok := ExtractFirstDateISO(reply)
	if !ok && prior != nil && prior.Date != "" {
		date, ok = prior.Date, true
	}
	if !ok {
		return nil
	}

	party := constants.DefaultPartySize
	if prior != nil && prior.PartySize > 0 {
		party = prior.PartySize
	} else if n, found := ExtractPartySize(context + " " + reply); found {
		party = n
	}

	return &models.ChipOffer{Date: date, PartySize: party, Times: times}
}
