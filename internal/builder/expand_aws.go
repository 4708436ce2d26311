package builder

import (
	"fmt"

	"github.com/RishabhK9/cloudist/internal/model"
)

func init() {
	register("aws", "s3", expandS3)
	register("aws", "lambda", expandLambda)
	register("aws", "sqs", expandSQS)
	register("aws", "ec2", expandEC2)
	register("aws", "rds", expandRDS)
	register("aws", "dynamodb", expandDynamoDB)
	register("aws", "apigateway", expandAPIGateway)
	register("aws", "alb", expandALB)
	register("aws", "vpc", expandVPC)
}

// lambdaAssumeRolePolicy is the trust policy every generated execution role
// carries. Kept as a multi-line literal so the serializer renders it as a
// heredoc instead of one escaped line.
const lambdaAssumeRolePolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Action": "sts:AssumeRole",
      "Effect": "Allow",
      "Principal": {
        "Service": "lambda.amazonaws.com"
      }
    }
  ]
}`

func defaultTags(name string) map[string]any {
	return map[string]any{
		"Name":      name,
		"ManagedBy": "cloudist",
	}
}

// expandS3 emits the base bucket, an unconditional public-access block, and
// a versioning satellite when the block's versioning flag is set.
func expandS3(name string, cfg map[string]any) []*model.TerraformResource {
	bucket := &model.TerraformResource{
		Type: "aws_s3_bucket",
		Name: name,
		Config: model.NewConfig().
			Set("bucket", strVal(cfg, "bucketName", uniqueHyphenName(name))).
			Set("force_destroy", boolVal(cfg, "forceDestroy")).
			Set("tags", defaultTags(name)),
	}

	accessBlock := &model.TerraformResource{
		Type: "aws_s3_bucket_public_access_block",
		Name: name + "_public_access",
		Config: model.NewConfig().
			Set("bucket", fmt.Sprintf("aws_s3_bucket.%s.id", name)).
			Set("block_public_acls", true).
			Set("block_public_policy", true).
			Set("ignore_public_acls", true).
			Set("restrict_public_buckets", true),
	}
	accessBlock.AddDependency(bucket.QualifiedName())

	out := []*model.TerraformResource{bucket, accessBlock}

	if boolVal(cfg, "versioning") {
		versioning := &model.TerraformResource{
			Type: "aws_s3_bucket_versioning",
			Name: name + "_versioning",
			Config: model.NewConfig().
				Set("bucket", fmt.Sprintf("aws_s3_bucket.%s.id", name)).
				Set("versioning_configuration", model.NewConfig().Set("status", "Enabled")),
		}
		versioning.AddDependency(bucket.QualifiedName())
		out = append(out, versioning)
	}

	return out
}

// expandLambda emits the function with its execution role and log-policy
// attachment. Blocks without an external code location also get an
// inline-code archive the function depends on.
func expandLambda(name string, cfg map[string]any) []*model.TerraformResource {
	role := &model.TerraformResource{
		Type: "aws_iam_role",
		Name: name + "_role",
		Config: model.NewConfig().
			Set("name", hyphenate(name)+"-role").
			Set("assume_role_policy", lambdaAssumeRolePolicy),
	}

	attachment := &model.TerraformResource{
		Type: "aws_iam_role_policy_attachment",
		Name: name + "_logs",
		Config: model.NewConfig().
			Set("role", fmt.Sprintf("aws_iam_role.%s_role.name", name)).
			Set("policy_arn", "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"),
	}
	attachment.AddDependency(role.QualifiedName())

	fn := &model.TerraformResource{
		Type: "aws_lambda_function",
		Name: name,
		Config: model.NewConfig().
			Set("function_name", strVal(cfg, "functionName", hyphenate(name))).
			Set("role", fmt.Sprintf("aws_iam_role.%s_role.arn", name)).
			Set("handler", strVal(cfg, "handler", "index.handler")).
			Set("runtime", strVal(cfg, "runtime", "nodejs18.x")).
			Set("timeout", intVal(cfg, "timeout", 30)).
			Set("memory_size", intVal(cfg, "memorySize", 128)),
	}
	fn.AddDependency(role.QualifiedName())

	out := []*model.TerraformResource{fn, role, attachment}

	s3Bucket := strVal(cfg, "s3Bucket", "")
	s3Key := strVal(cfg, "s3Key", "")
	if s3Bucket != "" && s3Key != "" {
		fn.Config.Set("s3_bucket", s3Bucket).Set("s3_key", s3Key)
	} else {
		archive := &model.TerraformResource{
			Type:       "archive_file",
			Name:       name + "_zip",
			DataSource: true,
			Config: model.NewConfig().
				Set("type", "zip").
				Set("source_dir", "var.lambda_src_dir").
				Set("output_path", "var.lambda_zip_path"),
		}
		fn.Config.
			Set("filename", fmt.Sprintf("data.archive_file.%s_zip.output_path", name)).
			Set("source_code_hash", fmt.Sprintf("data.archive_file.%s_zip.output_base64sha256", name))
		fn.AddDependency(archive.QualifiedName())
		out = append(out, archive)
	}

	if env, ok := cfg["environment"].(map[string]any); ok && len(env) > 0 {
		fn.Config.Set("environment", model.NewConfig().Set("variables", env))
	}

	return out
}

// expandSQS emits the base queue. With deadLetterQueue=true and a
// maxReceiveCount, a DLQ satellite is added and the main queue gains a
// redrive policy referencing it.
func expandSQS(name string, cfg map[string]any) []*model.TerraformResource {
	queue := &model.TerraformResource{
		Type: "aws_sqs_queue",
		Name: name,
		Config: model.NewConfig().
			Set("name", strVal(cfg, "queueName", hyphenate(name))).
			Set("visibility_timeout_seconds", intVal(cfg, "visibilityTimeout", 30)),
	}
	out := []*model.TerraformResource{queue}

	maxReceive := intVal(cfg, "maxReceiveCount", 0)
	if boolVal(cfg, "deadLetterQueue") && maxReceive > 0 {
		dlq := &model.TerraformResource{
			Type: "aws_sqs_queue",
			Name: name + "_dlq",
			Config: model.NewConfig().
				Set("name", strVal(cfg, "queueName", hyphenate(name))+"-dlq").
				Set("message_retention_seconds", 1209600),
		}
		queue.Config.Set("redrive_policy", fmt.Sprintf(
			"jsonencode({ deadLetterTargetArn = aws_sqs_queue.%s_dlq.arn, maxReceiveCount = %d })",
			name, maxReceive))
		queue.AddDependency(dlq.QualifiedName())
		out = append(out, dlq)
	}

	return out
}

func expandEC2(name string, cfg map[string]any) []*model.TerraformResource {
	return []*model.TerraformResource{{
		Type: "aws_instance",
		Name: name,
		Config: model.NewConfig().
			Set("ami", strVal(cfg, "ami", "ami-0c02fb55956c7d316")).
			Set("instance_type", strVal(cfg, "instanceType", "t2.micro")).
			Set("tags", defaultTags(name)),
	}}
}

func expandRDS(name string, cfg map[string]any) []*model.TerraformResource {
	return []*model.TerraformResource{{
		Type: "aws_db_instance",
		Name: name,
		Config: model.NewConfig().
			Set("identifier", strVal(cfg, "identifier", timeSuffixedName(name))).
			Set("engine", strVal(cfg, "engine", "postgres")).
			Set("instance_class", strVal(cfg, "instanceClass", "db.t3.micro")).
			Set("allocated_storage", intVal(cfg, "allocatedStorage", 20)).
			Set("username", strVal(cfg, "username", "dbadmin")).
			Set("password", strVal(cfg, "password", uniqueIdentifier("generated"))).
			Set("skip_final_snapshot", true),
	}}
}

func expandDynamoDB(name string, cfg map[string]any) []*model.TerraformResource {
	hashKey := strVal(cfg, "hashKey", "id")
	return []*model.TerraformResource{{
		Type: "aws_dynamodb_table",
		Name: name,
		Config: model.NewConfig().
			Set("name", strVal(cfg, "tableName", hyphenate(name))).
			Set("billing_mode", strVal(cfg, "billingMode", "PAY_PER_REQUEST")).
			Set("hash_key", hashKey).
			Set("attribute", model.NewConfig().
				Set("name", hashKey).
				Set("type", strVal(cfg, "hashKeyType", "S"))),
	}}
}

func expandAPIGateway(name string, cfg map[string]any) []*model.TerraformResource {
	return []*model.TerraformResource{{
		Type: "aws_api_gateway_rest_api",
		Name: name,
		Config: model.NewConfig().
			Set("name", strVal(cfg, "apiName", hyphenate(name))).
			Set("description", strVal(cfg, "description", "Managed by cloudist")),
	}}
}

func expandALB(name string, cfg map[string]any) []*model.TerraformResource {
	return []*model.TerraformResource{{
		Type: "aws_lb",
		Name: name,
		Config: model.NewConfig().
			Set("name", strVal(cfg, "lbName", hyphenate(name))).
			Set("internal", boolVal(cfg, "internal")).
			Set("load_balancer_type", "application").
			Set("tags", defaultTags(name)),
	}}
}

// expandVPC emits the VPC with an internet gateway satellite.
func expandVPC(name string, cfg map[string]any) []*model.TerraformResource {
	vpc := &model.TerraformResource{
		Type: "aws_vpc",
		Name: name,
		Config: model.NewConfig().
			Set("cidr_block", strVal(cfg, "cidrBlock", "10.0.0.0/16")).
			Set("enable_dns_support", true).
			Set("enable_dns_hostnames", true).
			Set("tags", defaultTags(name)),
	}

	igw := &model.TerraformResource{
		Type: "aws_internet_gateway",
		Name: name + "_igw",
		Config: model.NewConfig().
			Set("vpc_id", fmt.Sprintf("aws_vpc.%s.id", name)).
			Set("tags", defaultTags(name+"_igw")),
	}
	igw.AddDependency(vpc.QualifiedName())

	return []*model.TerraformResource{vpc, igw}
}
