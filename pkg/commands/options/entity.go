package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/entity"
)

// EntityOptions carries the editable fields of every entity type. Each type
// only registers the flags it understands.
type EntityOptions struct {
	Title       string
	Description string
	Message     string
	Date        string
	Status      string
	Campaign    string
	Platforms   []string
	Start       string
	End         string
	Color       string
}

func AddContentArgs(cmd *cobra.Command, o *EntityOptions) {
	addCommon(cmd, o)
	cmd.Flags().StringVar(&o.Description, "description", "", "Longer description.")
	addScheduled(cmd, o)
}

func AddSocialArgs(cmd *cobra.Command, o *EntityOptions) {
	addCommon(cmd, o)
	cmd.Flags().StringVar(&o.Message, "message", "", "Text published to the platforms.")
	cmd.Flags().StringSliceVar(&o.Platforms, "platforms", nil,
		"Comma separated platforms: twitter, facebook, instagram, linkedin.")
	addScheduled(cmd, o)
}

func AddCampaignArgs(cmd *cobra.Command, o *EntityOptions) {
	addCommon(cmd, o)
	cmd.Flags().StringVar(&o.Description, "description", "", "Longer description.")
	cmd.Flags().StringVar(&o.Start, "start", "", `First day, example: --start="2024-06-03".`)
	cmd.Flags().StringVar(&o.End, "end", "", `Last day, example: --end="2024-06-07".`)
	cmd.Flags().StringVar(&o.Color, "color", "", "Band colour from the campaign palette, example: --color=#BAE1FF.")
}

func addCommon(cmd *cobra.Command, o *EntityOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "", "Title.")
}

func addScheduled(cmd *cobra.Command, o *EntityOptions) {
	cmd.Flags().StringVar(&o.Date, "on", "", `Scheduled date, example: --on="2024-06-05" or --on="6/5".`)
	cmd.Flags().StringVar(&o.Status, "status", "", "Backlog, Planned, In Progress or Done.")
	cmd.Flags().StringVarP(&o.Campaign, "campaign", "c", "", "Campaign id.")
}

// Draft builds a new entity of typ from the flags. Unset fields keep the
// draft defaults for today.
func (o *EntityOptions) Draft(typ entity.Type, today entity.Date) (entity.Entity, error) {
	var e entity.Entity
	switch typ {
	case entity.TypeContent:
		e = entity.NewContentDraft(today)
	case entity.TypeSocial:
		e = entity.NewSocialDraft(today)
	case entity.TypeCampaign:
		e = entity.NewCampaignDraft(today)
	default:
		return nil, fmt.Errorf("unknown type %q", typ)
	}
	return o.apply(e, func(string) bool { return true }, today)
}

// Apply copies the flags the user set on cmd onto e.
func (o *EntityOptions) Apply(cmd *cobra.Command, e entity.Entity, today entity.Date) (entity.Entity, error) {
	return o.apply(e, cmd.Flags().Changed, today)
}

func (o *EntityOptions) apply(e entity.Entity, set func(string) bool, today entity.Date) (entity.Entity, error) {
	text := func(name, v string, dst *string) {
		if set(name) && v != "" {
			*dst = v
		}
	}
	date := func(name, v string, dst *entity.Date) error {
		if !set(name) || v == "" {
			return nil
		}
		d, err := ParseDate(v, today)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
	status := func(dst *entity.Status) error {
		if !set("status") || o.Status == "" {
			return nil
		}
		s, err := entity.ParseStatus(o.Status)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	switch v := e.(type) {
	case entity.ContentItem:
		text("title", o.Title, &v.Title)
		text("description", o.Description, &v.Description)
		if err := date("on", o.Date, &v.Date); err != nil {
			return nil, err
		}
		if err := status(&v.Status); err != nil {
			return nil, err
		}
		if set("campaign") {
			v.CampaignID = entity.ID(o.Campaign)
		}
		return v, nil
	case entity.SocialPost:
		text("title", o.Title, &v.Title)
		text("message", o.Message, &v.Message)
		if err := date("on", o.Date, &v.Date); err != nil {
			return nil, err
		}
		if err := status(&v.Status); err != nil {
			return nil, err
		}
		if set("campaign") {
			v.CampaignID = entity.ID(o.Campaign)
		}
		if set("platforms") && len(o.Platforms) > 0 {
			v.Platforms = v.Platforms[:0:0]
			for _, p := range o.Platforms {
				v.Platforms = append(v.Platforms, entity.Platform(strings.ToLower(strings.TrimSpace(p))))
			}
		}
		return v, nil
	case entity.Campaign:
		text("title", o.Title, &v.Title)
		text("description", o.Description, &v.Description)
		if err := date("start", o.Start, &v.StartDate); err != nil {
			return nil, err
		}
		if err := date("end", o.End, &v.EndDate); err != nil {
			return nil, err
		}
		text("color", o.Color, &v.Color)
		return v, nil
	}
	return nil, fmt.Errorf("can not edit %T", e)
}

// ParseRef reads a "<type> <id>" pair.
func ParseRef(typ, id string) (entity.Ref, error) {
	t, err := entity.ParseType(typ)
	if err != nil {
		return entity.Ref{}, err
	}
	if strings.TrimSpace(id) == "" {
		return entity.Ref{}, fmt.Errorf("%s id required", t.Noun())
	}
	return entity.Ref{Type: t, ID: strings.TrimSpace(id)}, nil
}
